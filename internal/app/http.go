package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/http"
	httpH "github.com/yungbote/prereqpath-backend/internal/http/handlers"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Path   *httpH.PathHandler
	Graph  *httpH.GraphHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Path:   httpH.NewPathHandler(log, services.Path),
		Graph:  httpH.NewGraphHandler(log, services.Path),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.Health,
		PathHandler:    handlers.Path,
		GraphHandler:   handlers.Graph,
		AllowedOrigins: cfg.AllowedOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
		ServiceName:    cfg.ServiceName,
	})
}
