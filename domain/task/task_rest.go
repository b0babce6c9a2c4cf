package task

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
	PathTasks = domain.PathTasks
)

func RegisterTasksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTasks, middleWares...)
	g.GET("", handleQueryTasks)
	g.POST("", handleCreateTask)
	g.GET("/collaborator-count/:projectId", handleCountCollaboratorsPerTask)
	g.POST("/assign-collaborator", handleAssignCollaborator)
	g.DELETE("/assign-collaborator", handleUnassignCollaborator)
	g.GET("/:id", handleDetailTask)
	g.PUT("/:id", handleUpdateTask)
	g.DELETE("/:id", handleDeleteTask)
}

func handleQueryTasks(c *gin.Context) {
	req := hateoas.PageRequest{}
	if err := c.ShouldBindWith(&req, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page, err := QueryTasksFunc(c.Request.Context(), req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, page)
}

func handleDetailTask(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	r, err := DetailTaskFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, r)
}

func handleCreateTask(c *gin.Context) {
	var creation *domain.TaskCreation
	payload := domain.TaskCreation{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		creation = &payload
	}
	r, err := CreateTaskFunc(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.Header("Location", hateoas.ItemPath(PathTasks, r.ID))
	c.JSON(http.StatusCreated, r)
}

func handleUpdateTask(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	var updating *domain.TaskUpdating
	payload := domain.TaskUpdating{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		updating = &payload
	}
	r, err := UpdateTaskFunc(c.Request.Context(), id, updating)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, r)
}

func handleDeleteTask(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	if err := DeleteTaskFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleCountCollaboratorsPerTask(c *gin.Context) {
	projectID, err := misc.BindingPathParamID(c, "projectId")
	if err != nil {
		panic(err)
	}
	counts, err := CountCollaboratorsPerTaskFunc(c.Request.Context(), projectID)
	if err != nil {
		panic(err)
	}
	if len(counts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func handleAssignCollaborator(c *gin.Context) {
	var assignment *domain.TaskAssignment
	payload := domain.TaskAssignment{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		assignment = &payload
	}
	message, err := AssignCollaboratorFunc(c.Request.Context(), assignment)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func handleUnassignCollaborator(c *gin.Context) {
	assignment := domain.TaskAssignment{}
	if err := c.ShouldBindWith(&assignment, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UnassignCollaboratorFunc(c.Request.Context(), &assignment); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
