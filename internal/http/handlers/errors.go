package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/http/response"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/apierr"
)

// classify maps a service error onto the API error taxonomy.
func classify(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, prereq.ErrCourseNotFound):
		return apierr.New(http.StatusNotFound, prereq.ReasonTargetNotFound, err)
	case errors.Is(err, prereq.ErrConceptNotDefined):
		return apierr.New(http.StatusUnprocessableEntity, "concept_not_defined", err)
	default:
		return apierr.New(http.StatusInternalServerError, "resolve_failed", err)
	}
}

func respondErr(c *gin.Context, err error) {
	response.RespondAPIError(c, classify(err))
}
