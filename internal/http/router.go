package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/prereqpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/prereqpath-backend/internal/http/middleware"
	"github.com/yungbote/prereqpath-backend/internal/observability"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	PathHandler   *httpH.PathHandler
	GraphHandler  *httpH.GraphHandler
	HealthHandler *httpH.HealthHandler

	AllowedOrigins []string
	MetricsEnabled bool
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	if cfg.MetricsEnabled {
		r.Use(httpMW.Metrics())
		r.GET("/metrics", gin.WrapH(observability.MetricsHandler()))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Prerequisite paths
		if cfg.PathHandler != nil {
			api.GET("/path", cfg.PathHandler.ResolveByName)
			api.GET("/courses/:id/path", cfg.PathHandler.ResolveByID)
		}

		// Concept graph
		if cfg.GraphHandler != nil {
			api.GET("/graph/stats", cfg.GraphHandler.Stats)
			api.POST("/graph/snapshot/invalidate", cfg.GraphHandler.InvalidateSnapshot)
		}
	}

	return r
}
