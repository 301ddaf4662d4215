package store

import (
	"context"
	"time"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
)

// EntityStore is the read-only view of the catalog a resolution needs.
type EntityStore interface {
	ListConcepts(ctx context.Context) ([]prereq.Concept, error)
	ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error)
	GetCourse(ctx context.Context, id string) (prereq.Course, bool, error)
	FindCourseByName(ctx context.Context, name string) (prereq.Course, bool, error)
	ListCandidateCourses(ctx context.Context, excluding string) ([]prereq.Course, error)
	GetCourseConcepts(ctx context.Context, courseID string) ([]string, error)
}

// MembershipBatcher is implemented by stores that can load the concept
// membership of many courses in one round trip.
type MembershipBatcher interface {
	ListCourseConceptsByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]string, error)
}

// ConceptSource supplies the concept graph inputs. It lets the concept graph
// live somewhere other than the course catalog.
type ConceptSource interface {
	ListConcepts(ctx context.Context) ([]prereq.Concept, error)
	ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error)
}

// ConceptSnapshot is the concept graph input captured at one point in time.
type ConceptSnapshot struct {
	Concepts []prereq.Concept          `json:"concepts"`
	Edges    []prereq.PrerequisiteEdge `json:"edges"`
	LoadedAt time.Time                 `json:"loaded_at"`
}
