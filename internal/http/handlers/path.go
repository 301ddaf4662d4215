package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/apierr"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/services"
)

type PathHandler struct {
	log  *logger.Logger
	path services.PathService
}

func NewPathHandler(log *logger.Logger, path services.PathService) *PathHandler {
	return &PathHandler{log: log.With("handler", "PathHandler"), path: path}
}

type courseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pathResponse struct {
	IsValid         bool                    `json:"is_valid"`
	Target          courseRef               `json:"target"`
	PreCourses      []courseRef             `json:"pre_courses"`
	Path            []string                `json:"path"`
	Strategy        string                  `json:"strategy,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
	RemovedEdges    []prereq.RemovedEdge    `json:"removed_edges,omitempty"`
	Recommendations []prereq.Recommendation `json:"recommendations,omitempty"`
	CycleMembers    [][]string              `json:"cycle_members,omitempty"`
}

func toPathResponse(rp prereq.ResolvedPath, targetName string) pathResponse {
	if rp.TargetName != "" {
		targetName = rp.TargetName
	}
	out := pathResponse{
		IsValid:         rp.Valid,
		Target:          courseRef{ID: rp.TargetID, Name: targetName},
		PreCourses:      []courseRef{},
		Path:            rp.Path,
		Strategy:        rp.Strategy,
		Reason:          rp.Reason,
		RemovedEdges:    rp.RemovedEdges,
		Recommendations: rp.Recommendations,
		CycleMembers:    rp.CycleMembers,
	}
	if out.Path == nil {
		out.Path = []string{}
	}
	for i, id := range rp.Path {
		name := ""
		if i < len(rp.Names) {
			name = rp.Names[i]
		}
		if i == len(rp.Path)-1 {
			if name != "" {
				out.Target.Name = name
			}
			break
		}
		out.PreCourses = append(out.PreCourses, courseRef{ID: id, Name: name})
	}
	return out
}

// GET /api/path?course=<name>
func (h *PathHandler) ResolveByName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("course"))
	if name == "" {
		respondErr(c, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("course query parameter is required")))
		return
	}
	rp, err := h.path.ResolvePrerequisitePathByName(c.Request.Context(), name)
	if err != nil {
		h.respond(c, rp, err)
		return
	}
	c.JSON(http.StatusOK, toPathResponse(rp, name))
}

// GET /api/courses/:id/path
func (h *PathHandler) ResolveByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondErr(c, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("course id is required")))
		return
	}
	rp, err := h.path.ResolvePrerequisitePath(c.Request.Context(), id)
	if err != nil {
		h.respond(c, rp, err)
		return
	}
	c.JSON(http.StatusOK, toPathResponse(rp, ""))
}

func (h *PathHandler) respond(c *gin.Context, rp prereq.ResolvedPath, err error) {
	ae := classify(err)
	if ae.Status >= http.StatusInternalServerError {
		h.log.Error("Resolve failed", "target_id", rp.TargetID, "error", err)
	}
	respondErr(c, ae)
}
