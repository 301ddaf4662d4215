package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/http/response"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
	"github.com/yungbote/prereqpath-backend/internal/services"
)

func newTestRouter(t *testing.T, svc services.PathService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	ph := NewPathHandler(log, svc)
	gh := NewGraphHandler(log, svc)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	r.GET("/api/path", ph.ResolveByName)
	r.GET("/api/courses/:id/path", ph.ResolveByID)
	r.GET("/api/graph/stats", gh.Stats)
	r.POST("/api/graph/snapshot/invalidate", gh.InvalidateSnapshot)
	return r
}

func memoryService() services.PathService {
	m := store.NewMemory().
		AddConcepts(
			prereq.Concept{ID: "K1", Name: "Limits"},
			prereq.Concept{ID: "K2", Name: "Derivatives"},
		).
		AddEdges(prereq.PrerequisiteEdge{Prerequisite: "K1", Target: "K2"}).
		AddCourse(prereq.Course{ID: "pre", Name: "Precalculus"}, "K1").
		AddCourse(prereq.Course{ID: "calc", Name: "Calculus"}, "K2").
		AddCourse(prereq.Course{ID: "orient", Name: "Orientation"})
	log := logger.Nop()
	loader := services.NewSnapshotLoader(m, nil, 0, log)
	return services.NewPathService(log, m, loader, services.PathServiceConfig{Policy: prereq.DefaultPolicy()})
}

func do(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodePath(t *testing.T, rec *httptest.ResponseRecorder) pathResponse {
	t.Helper()
	var out pathResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return out
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorEnvelope {
	t.Helper()
	var out response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, memoryService())
	rec := do(r, http.MethodGet, "/healthcheck")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
}

func TestResolveByName(t *testing.T) {
	r := newTestRouter(t, memoryService())
	rec := do(r, http.MethodGet, "/api/path?course=Calculus")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	out := decodePath(t, rec)
	if !out.IsValid || out.Strategy != prereq.StrategyConceptGraph {
		t.Fatalf("unexpected result: %+v", out)
	}
	if len(out.Path) != 2 || out.Path[0] != "pre" || out.Path[1] != "calc" {
		t.Fatalf("path=%v", out.Path)
	}
	if len(out.PreCourses) != 1 || out.PreCourses[0].Name != "Precalculus" {
		t.Fatalf("pre_courses=%+v", out.PreCourses)
	}
	if out.Target.ID != "calc" || out.Target.Name != "Calculus" {
		t.Fatalf("target=%+v", out.Target)
	}
}

func TestResolveByIDBasicCourse(t *testing.T) {
	r := newTestRouter(t, memoryService())
	rec := do(r, http.MethodGet, "/api/courses/orient/path")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	out := decodePath(t, rec)
	if out.IsValid || out.Reason != prereq.ReasonBasicCourse {
		t.Fatalf("expected basic-course, got %+v", out)
	}
	if out.Path == nil || len(out.PreCourses) != 0 {
		t.Fatalf("expected empty arrays, got %+v", out)
	}
	if out.Target.ID != "orient" || out.Target.Name != "Orientation" {
		t.Fatalf("target=%+v", out.Target)
	}
}

func TestResolveMissingQuery(t *testing.T) {
	r := newTestRouter(t, memoryService())
	rec := do(r, http.MethodGet, "/api/path")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	if env := decodeErr(t, rec); env.Error.Code != "invalid_argument" {
		t.Fatalf("code=%q", env.Error.Code)
	}
}

func TestResolveUnknownCourse(t *testing.T) {
	r := newTestRouter(t, memoryService())
	for _, target := range []string{"/api/path?course=Topology", "/api/courses/nope/path"} {
		rec := do(r, http.MethodGet, target)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status=%d", target, rec.Code)
		}
		if env := decodeErr(t, rec); env.Error.Code != prereq.ReasonTargetNotFound {
			t.Fatalf("%s: code=%q", target, env.Error.Code)
		}
	}
}

func TestResolveUndefinedConcept(t *testing.T) {
	m := store.NewMemory().
		AddConcepts(prereq.Concept{ID: "K1", Name: "Limits"}).
		AddCourse(prereq.Course{ID: "calc", Name: "Calculus"}, "K9")
	log := logger.Nop()
	svc := services.NewPathService(log, m, services.NewSnapshotLoader(m, nil, 0, log), services.PathServiceConfig{Policy: prereq.DefaultPolicy()})
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodGet, "/api/courses/calc/path")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if env := decodeErr(t, rec); env.Error.Code != "concept_not_defined" {
		t.Fatalf("code=%q", env.Error.Code)
	}
}

type failingService struct {
	services.PathService
	err error
}

func (f failingService) ResolvePrerequisitePath(ctx context.Context, id string) (prereq.ResolvedPath, error) {
	return prereq.ResolvedPath{TargetID: id}, f.err
}

func (f failingService) GraphStats(ctx context.Context) (prereq.GraphStats, error) {
	return prereq.GraphStats{}, f.err
}

func (f failingService) InvalidateSnapshot(ctx context.Context) error { return f.err }

func TestStoreFailureMapsTo500(t *testing.T) {
	r := newTestRouter(t, failingService{err: errors.New("connection refused")})
	rec := do(r, http.MethodGet, "/api/courses/calc/path")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
	if env := decodeErr(t, rec); env.Error.Code != "resolve_failed" || env.Error.Message != "connection refused" {
		t.Fatalf("envelope=%+v", env)
	}
	if rec := do(r, http.MethodPost, "/api/graph/snapshot/invalidate"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("invalidate status=%d", rec.Code)
	}
}

func TestGraphStatsAndInvalidate(t *testing.T) {
	r := newTestRouter(t, memoryService())
	rec := do(r, http.MethodGet, "/api/graph/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var st prereq.GraphStats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Concepts != 2 || st.Edges != 1 || st.Roots != 1 {
		t.Fatalf("stats=%+v", st)
	}

	rec = do(r, http.MethodPost, "/api/graph/snapshot/invalidate")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("invalidate status=%d", rec.Code)
	}
}
