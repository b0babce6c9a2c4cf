package servehttp

import (
	"net/http"
	"taskhub/bizerror"
	"taskhub/client/es"
	"taskhub/common"
	"taskhub/config"
	"taskhub/domain/collaborator"
	"taskhub/domain/project"
	"taskhub/domain/task"
	"taskhub/indices"
	"taskhub/infra/ratelimit"
	"taskhub/infra/tracing"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewEngine assembles middlewares and every rest api, search is served only with an elasticsearch client.
func NewEngine(cfg *config.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logrus.StandardLogger().Out))

	corsConfig := cors.DefaultConfig()
	origins := cfg.AllowOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.ExposeHeaders = []string{"Location"}
	engine.Use(cors.New(corsConfig))

	engine.Use(bizerror.ErrorHandling())
	engine.Use(tracing.TracingIngress())
	if cfg.RateLimitRPS > 0 {
		engine.Use(ratelimit.RateLimiting(ratelimit.NewClientLimiters(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)))
	}

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, common.GetServiceName())
	})

	project.RegisterProjectsRestAPI(engine)
	task.RegisterTasksRestAPI(engine)
	collaborator.RegisterCollaboratorsRestAPI(engine)
	if es.ActiveESClient != nil {
		indices.RegisterIndicesRestAPI(engine)
	}
	return engine
}
