package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/prereqpath-backend/internal/http/handlers"
	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/services"
)

func testRouter(metrics bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	m := store.NewMemory().
		AddConcepts(prereq.Concept{ID: "K1", Name: "Sets"}).
		AddCourse(prereq.Course{ID: "logic", Name: "Logic"}, "K1")
	svc := services.NewPathService(log, m, services.NewSnapshotLoader(m, nil, 0, log), services.PathServiceConfig{Policy: prereq.DefaultPolicy()})
	return NewRouter(RouterConfig{
		Log:            log,
		PathHandler:    httpH.NewPathHandler(log, svc),
		GraphHandler:   httpH.NewGraphHandler(log, svc),
		HealthHandler:  httpH.NewHealthHandler(),
		MetricsEnabled: metrics,
		ServiceName:    "prereqpath-test",
	})
}

func TestRouterServesMetricsWhenEnabled(t *testing.T) {
	r := testRouter(true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/logic/path", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve status=%d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "prereqpath_http_requests_total") {
		t.Fatalf("http metrics missing from exposition")
	}
}

func TestRouterHidesMetricsWhenDisabled(t *testing.T) {
	r := testRouter(false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("metrics status=%d, want 404", rec.Code)
	}
}
