package project

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
	PathProjects = domain.PathProjects
)

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects, middleWares...)
	g.GET("", handleQueryProjects)
	g.POST("", handleCreateProject)
	g.GET("/count", handleCountProjects)
	g.GET("/task-count", handleCountTasksPerProject)
	g.GET("/:id", handleDetailProject)
	g.GET("/:id/tasks", handleQueryProjectTasks)
	g.PUT("/:id", handleUpdateProject)
	g.DELETE("/:id", handleDeleteProject)
}

func handleQueryProjects(c *gin.Context) {
	req := hateoas.PageRequest{}
	if err := c.ShouldBindWith(&req, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page, err := QueryProjectsFunc(c.Request.Context(), req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, page)
}

func handleDetailProject(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	detail, err := DetailProjectFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func handleQueryProjectTasks(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	req := hateoas.PageRequest{}
	if err := c.ShouldBindWith(&req, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page, err := QueryProjectTasksFunc(c.Request.Context(), id, req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, page)
}

func handleCreateProject(c *gin.Context) {
	var creation *domain.ProjectCreation
	payload := domain.ProjectCreation{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		creation = &payload
	}
	r, err := CreateProjectFunc(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.Header("Location", hateoas.ItemPath(PathProjects, r.ID))
	c.JSON(http.StatusCreated, r)
}

func handleUpdateProject(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	var updating *domain.ProjectUpdating
	payload := domain.ProjectUpdating{}
	present, err := misc.BindJSONPayload(c, &payload)
	if err != nil {
		panic(err)
	}
	if present {
		updating = &payload
	}
	r, err := UpdateProjectFunc(c.Request.Context(), id, updating)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, r)
}

func handleDeleteProject(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	if err := DeleteProjectFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleCountProjects(c *gin.Context) {
	count, err := CountProjectsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"projects": count})
}

func handleCountTasksPerProject(c *gin.Context) {
	counts, err := CountTasksPerProjectFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	if len(counts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, counts)
}
