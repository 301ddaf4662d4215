package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/prereqpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
)

func TestConceptRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewConceptRepo(db, testutil.Logger(t))

	rows := []*types.Concept{
		{ID: "K_b", Name: "B"},
		{ID: "K_a", Name: "A"},
	}
	if err := repo.Upsert(dbc, rows); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, []*types.Concept{{ID: "K_a", Name: "A2", Explanation: "x"}}); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	all, err := repo.ListAll(dbc)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListAll: err=%v len=%d", err, len(all))
	}
	if all[0].ID != "K_a" || all[0].Name != "A2" {
		t.Fatalf("expected updated K_a first, got %+v", all[0])
	}
	if got, err := repo.GetByIDs(dbc, []string{"K_b", "missing"}); err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if n, err := repo.Count(dbc); err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
}

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	testutil.SeedCourse(t, ctx, tx, "c1", "线性代数", "无。")
	testutil.SeedCourse(t, ctx, tx, "c2", "机器学习", "《线性代数》")
	if err := repo.Upsert(dbc, []*types.Course{{ID: "c3", Name: "Python", Difficulty: testutil.PtrFloat(1.5)}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetByID(dbc, "c2")
	if err != nil || got == nil || got.Prerequisites != "《线性代数》" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByID(dbc, "nope"); err != nil || got != nil {
		t.Fatalf("GetByID missing: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByName(dbc, " 线性代数 "); err != nil || got == nil || got.ID != "c1" {
		t.Fatalf("GetByName: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByName(dbc, "unknown"); err != nil || got != nil {
		t.Fatalf("GetByName missing: got=%v err=%v", got, err)
	}
	others, err := repo.ListExcluding(dbc, "c2")
	if err != nil || len(others) != 2 || others[0].ID != "c1" || others[1].ID != "c3" {
		t.Fatalf("ListExcluding: err=%v rows=%v", err, others)
	}
	if others[1].Difficulty == nil || *others[1].Difficulty != 1.5 {
		t.Fatalf("difficulty not persisted: %+v", others[1])
	}
	if rows, err := repo.GetByIDs(dbc, []string{"c1", "c3"}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
}

func TestPrerequisiteDependencyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPrerequisiteDependencyRepo(db, testutil.Logger(t))

	n, err := repo.CreateIgnoreDuplicates(dbc, []*types.PrerequisiteDependency{
		{PrerequisiteID: "k1", TargetID: "k2"},
		{PrerequisiteID: "k2", TargetID: "k3"},
	})
	if err != nil || n != 2 {
		t.Fatalf("CreateIgnoreDuplicates: n=%d err=%v", n, err)
	}
	n, err = repo.CreateIgnoreDuplicates(dbc, []*types.PrerequisiteDependency{{PrerequisiteID: "k1", TargetID: "k2"}})
	if err != nil || n != 0 {
		t.Fatalf("CreateIgnoreDuplicates (dup): n=%d err=%v", n, err)
	}

	all, err := repo.ListAll(dbc)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListAll: err=%v len=%d", err, len(all))
	}
	if all[0].TargetID != "k2" {
		t.Fatalf("expected rows ordered by target, got %+v", all[0])
	}
	if rows, err := repo.GetByTargetIDs(dbc, []string{"k3"}); err != nil || len(rows) != 1 || rows[0].PrerequisiteID != "k2" {
		t.Fatalf("GetByTargetIDs: err=%v rows=%v", err, rows)
	}
}

func TestCourseConceptRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseConceptRepo(db, testutil.Logger(t))

	testutil.SeedMembership(t, ctx, tx, "c1", "k2", "k1")
	testutil.SeedMembership(t, ctx, tx, "c2", "k3")
	if n, err := repo.CreateIgnoreDuplicates(dbc, []*types.CourseConcept{{CourseID: "c1", ConceptID: "k1"}}); err != nil || n != 0 {
		t.Fatalf("CreateIgnoreDuplicates (dup): n=%d err=%v", n, err)
	}

	ids, err := repo.GetConceptIDsByCourseID(dbc, "c1")
	if err != nil || len(ids) != 2 || ids[0] != "k1" || ids[1] != "k2" {
		t.Fatalf("GetConceptIDsByCourseID: ids=%v err=%v", ids, err)
	}
	byCourse, err := repo.GetConceptIDsByCourseIDs(dbc, []string{"c1", "c2", "c9"})
	if err != nil {
		t.Fatalf("GetConceptIDsByCourseIDs: %v", err)
	}
	if len(byCourse["c1"]) != 2 || len(byCourse["c2"]) != 1 || len(byCourse["c9"]) != 0 {
		t.Fatalf("unexpected membership map %v", byCourse)
	}
}
