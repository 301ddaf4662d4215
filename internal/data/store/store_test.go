package store

import (
	"context"
	"testing"

	"github.com/yungbote/prereqpath-backend/internal/data/repos"
	"github.com/yungbote/prereqpath-backend/internal/data/repos/testutil"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
)

func TestGormStore(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedConcepts(t, ctx, db, "k1", "k2")
	testutil.SeedPrerequisite(t, ctx, db, "k1", "k2")
	testutil.SeedCourse(t, ctx, db, "c1", "Intro", "")
	testutil.SeedCourse(t, ctx, db, "c2", "Advanced", "Intro")
	testutil.SeedMembership(t, ctx, db, "c1", "k1")
	testutil.SeedMembership(t, ctx, db, "c2", "k2")

	s := NewGorm(repos.NewSet(db, testutil.Logger(t)), testutil.Logger(t))
	var _ EntityStore = s
	var _ MembershipBatcher = s

	concepts, err := s.ListConcepts(ctx)
	if err != nil || len(concepts) != 2 {
		t.Fatalf("ListConcepts: err=%v len=%d", err, len(concepts))
	}
	edges, err := s.ListPrerequisiteEdges(ctx)
	if err != nil || len(edges) != 1 || edges[0] != (prereq.PrerequisiteEdge{Prerequisite: "k1", Target: "k2"}) {
		t.Fatalf("ListPrerequisiteEdges: err=%v edges=%v", err, edges)
	}
	c, ok, err := s.GetCourse(ctx, "c2")
	if err != nil || !ok || c.Prerequisites != "Intro" {
		t.Fatalf("GetCourse: c=%+v ok=%v err=%v", c, ok, err)
	}
	if _, ok, err := s.GetCourse(ctx, "missing"); err != nil || ok {
		t.Fatalf("GetCourse missing: ok=%v err=%v", ok, err)
	}
	if c, ok, err := s.FindCourseByName(ctx, "Intro"); err != nil || !ok || c.ID != "c1" {
		t.Fatalf("FindCourseByName: c=%+v ok=%v err=%v", c, ok, err)
	}
	cands, err := s.ListCandidateCourses(ctx, "c2")
	if err != nil || len(cands) != 1 || cands[0].ID != "c1" {
		t.Fatalf("ListCandidateCourses: err=%v cands=%v", err, cands)
	}
	ids, err := s.GetCourseConcepts(ctx, "c1")
	if err != nil || len(ids) != 1 || ids[0] != "k1" {
		t.Fatalf("GetCourseConcepts: ids=%v err=%v", ids, err)
	}
	m, err := s.ListCourseConceptsByCourseIDs(ctx, []string{"c1", "c2"})
	if err != nil || len(m) != 2 {
		t.Fatalf("ListCourseConceptsByCourseIDs: m=%v err=%v", m, err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory().
		AddConcepts(prereq.Concept{ID: "k1"}).
		AddCourse(prereq.Course{ID: "b", Name: "Same"}, "k1").
		AddCourse(prereq.Course{ID: "a", Name: "Same"})

	if c, ok, _ := m.FindCourseByName(ctx, " Same "); !ok || c.ID != "a" {
		t.Fatalf("expected lowest id on duplicate names, got %+v", c)
	}
	cands, _ := m.ListCandidateCourses(ctx, "a")
	if len(cands) != 1 || cands[0].ID != "b" {
		t.Fatalf("ListCandidateCourses: %v", cands)
	}
	if _, ok := interface{}(m).(MembershipBatcher); ok {
		t.Fatalf("memory store must not batch")
	}
}

type fakeSource struct{}

func (fakeSource) ListConcepts(ctx context.Context) ([]prereq.Concept, error) {
	return []prereq.Concept{{ID: "remote"}}, nil
}

func (fakeSource) ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error) {
	return []prereq.PrerequisiteEdge{{Prerequisite: "remote", Target: "remote2"}}, nil
}

func TestWithConceptSource(t *testing.T) {
	ctx := context.Background()
	base := NewMemory().AddConcepts(prereq.Concept{ID: "local"}).AddCourse(prereq.Course{ID: "c"}, "local")
	s := WithConceptSource(base, fakeSource{})

	cs, _ := s.ListConcepts(ctx)
	if len(cs) != 1 || cs[0].ID != "remote" {
		t.Fatalf("expected concepts from source, got %v", cs)
	}
	if _, ok, _ := s.GetCourse(ctx, "c"); !ok {
		t.Fatalf("courses should come from base")
	}
	if _, ok := s.(MembershipBatcher); ok {
		t.Fatalf("overlay over memory must not batch")
	}

	db := testutil.DB(t)
	g := NewGorm(repos.NewSet(db, testutil.Logger(t)), testutil.Logger(t))
	if _, ok := WithConceptSource(g, fakeSource{}).(MembershipBatcher); !ok {
		t.Fatalf("overlay over gorm should keep batching")
	}
}
