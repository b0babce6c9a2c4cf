package collaborator

import (
	"net/http"
	"taskhub/bizerror"
	"taskhub/domain"
	"taskhub/hateoas"
	"taskhub/misc"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathCollaborators = domain.PathCollaborators
)

func RegisterCollaboratorsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathCollaborators, middleWares...)
	g.GET("", handleQueryCollaborators)
	g.POST("", handleCreateCollaborator)
	g.GET("/count", handleCountCollaborators)
	g.GET("/task-count", handleCountTasksPerCollaborator)
	g.GET("/:id", handleDetailCollaborator)
	g.PUT("/:id", handleUpdateCollaborator)
	g.DELETE("/:id", handleDeleteCollaborator)
}

func handleQueryCollaborators(c *gin.Context) {
	req := hateoas.PageRequest{}
	if err := c.ShouldBindWith(&req, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page, err := QueryCollaboratorsFunc(c.Request.Context(), req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, page)
}

func handleDetailCollaborator(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	r, err := DetailCollaboratorFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, r)
}

func handleCreateCollaborator(c *gin.Context) {
	var creation *domain.CollaboratorCreation
	payload := domain.CollaboratorCreation{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		creation = &payload
	}
	r, err := CreateCollaboratorFunc(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.Header("Location", hateoas.ItemPath(PathCollaborators, r.ID))
	c.JSON(http.StatusCreated, r)
}

func handleUpdateCollaborator(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	var updating *domain.CollaboratorUpdating
	payload := domain.CollaboratorUpdating{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		updating = &payload
	}
	r, err := UpdateCollaboratorFunc(c.Request.Context(), id, updating)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, r)
}

func handleDeleteCollaborator(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	if err := DeleteCollaboratorFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleCountCollaborators(c *gin.Context) {
	count, err := CountCollaboratorsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"collaborators": count})
}

func handleCountTasksPerCollaborator(c *gin.Context) {
	counts, err := CountTasksPerCollaboratorFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	if len(counts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, counts)
}
