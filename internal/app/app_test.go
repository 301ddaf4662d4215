package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/prereqpath-backend/internal/data/db"
	"github.com/yungbote/prereqpath-backend/internal/data/repos/testutil"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DB: db.Config{
			Driver:     db.DriverSQLite,
			SQLitePath: fmt.Sprintf("file:app_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
		GraphSource:           GraphSourcePostgres,
		SnapshotCacheTTL:      time.Minute,
		MembershipConcurrency: 4,
		ResolveTimeout:        5 * time.Second,
	}
}

func TestAppResolvesSeededCatalog(t *testing.T) {
	a, err := NewWithConfig(logger.Nop(), testConfig(t))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)

	ctx := context.Background()
	gdb := a.DB.DB()
	testutil.SeedConcepts(t, ctx, gdb, "c-sets", "c-proofs", "c-groups")
	testutil.SeedPrerequisite(t, ctx, gdb, "c-sets", "c-proofs")
	testutil.SeedPrerequisite(t, ctx, gdb, "c-proofs", "c-groups")
	testutil.SeedCourse(t, ctx, gdb, "discrete", "Discrete Mathematics", "")
	testutil.SeedCourse(t, ctx, gdb, "proofs", "Intro to Proofs", "")
	testutil.SeedCourse(t, ctx, gdb, "algebra", "Abstract Algebra", "")
	testutil.SeedMembership(t, ctx, gdb, "discrete", "c-sets")
	testutil.SeedMembership(t, ctx, gdb, "proofs", "c-proofs")
	testutil.SeedMembership(t, ctx, gdb, "algebra", "c-groups")

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/path?course=Abstract+Algebra", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		IsValid bool     `json:"is_valid"`
		Path    []string `json:"path"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"discrete", "proofs", "algebra"}
	if !body.IsValid || strings.Join(body.Path, ",") != strings.Join(want, ",") {
		t.Fatalf("got valid=%v path=%v, want %v", body.IsValid, body.Path, want)
	}
}

func TestAppRejectsBadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte("coverage_threshold: 2\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	cfg := testConfig(t)
	cfg.PolicyFile = path
	if _, err := NewWithConfig(logger.Nop(), cfg); err == nil {
		t.Fatalf("expected policy validation error")
	}
}

func TestAppRequiresNeo4jForNeo4jSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.GraphSource = GraphSourceNeo4j
	if _, err := NewWithConfig(logger.Nop(), cfg); err == nil {
		t.Fatalf("expected error without NEO4J_URI")
	}
}
