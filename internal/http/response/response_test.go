package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/platform/apierr"
)

func envelopeFor(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, err)
	var env ErrorEnvelope
	if jerr := json.Unmarshal(rec.Body.Bytes(), &env); jerr != nil {
		t.Fatalf("decode: %v", jerr)
	}
	return rec.Code, env
}

func TestRespondAPIError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", apierr.New(http.StatusNotFound, "target-not-found", errors.New("course x")))
	status, env := envelopeFor(t, wrapped)
	if status != http.StatusNotFound || env.Error.Code != "target-not-found" || env.Error.Message != "course x" {
		t.Fatalf("status=%d env=%+v", status, env)
	}

	status, env = envelopeFor(t, errors.New("boom"))
	if status != http.StatusInternalServerError || env.Error.Code != "internal" {
		t.Fatalf("status=%d env=%+v", status, env)
	}
}

func TestRespondErrorNilErrUsesStatusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, http.StatusBadRequest, "invalid_argument", nil)
	var env ErrorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Message != "Bad Request" {
		t.Fatalf("message=%q", env.Error.Message)
	}
}
