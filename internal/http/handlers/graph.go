package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/http/response"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/services"
)

type GraphHandler struct {
	log  *logger.Logger
	path services.PathService
}

func NewGraphHandler(log *logger.Logger, path services.PathService) *GraphHandler {
	return &GraphHandler{log: log.With("handler", "GraphHandler"), path: path}
}

// GET /api/graph/stats
func (h *GraphHandler) Stats(c *gin.Context) {
	st, err := h.path.GraphStats(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "graph_unavailable", err)
		return
	}
	response.RespondOK(c, st)
}

// POST /api/graph/snapshot/invalidate
func (h *GraphHandler) InvalidateSnapshot(c *gin.Context) {
	if err := h.path.InvalidateSnapshot(c.Request.Context()); err != nil {
		h.log.Warn("Snapshot invalidation failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "invalidate_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
