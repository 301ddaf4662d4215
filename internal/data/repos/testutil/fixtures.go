package testutil

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
)

func SeedConcepts(tb testing.TB, ctx context.Context, tx *gorm.DB, ids ...string) []*types.Concept {
	tb.Helper()
	rows := make([]*types.Concept, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &types.Concept{ID: id, Name: id, Explanation: "explanation of " + id})
	}
	if len(rows) == 0 {
		return rows
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		tb.Fatalf("seed concepts: %v", err)
	}
	return rows
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, id, name, prerequisites string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:            id,
		Name:          name,
		Prerequisites: prerequisites,
		Metadata:      datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedPrerequisite(tb testing.TB, ctx context.Context, tx *gorm.DB, prerequisiteID, targetID string) *types.PrerequisiteDependency {
	tb.Helper()
	row := &types.PrerequisiteDependency{PrerequisiteID: prerequisiteID, TargetID: targetID}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed prerequisite: %v", err)
	}
	return row
}

func SeedMembership(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID string, conceptIDs ...string) {
	tb.Helper()
	for _, cid := range conceptIDs {
		row := &types.CourseConcept{CourseID: courseID, ConceptID: cid}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed membership: %v", err)
		}
	}
}

func PtrFloat(v float64) *float64 { return &v }
