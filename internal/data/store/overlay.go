package store

import (
	"context"

	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
)

// WithConceptSource serves concepts and prerequisite edges from src and
// everything else from base. The MembershipBatcher of base is preserved.
func WithConceptSource(base EntityStore, src ConceptSource) EntityStore {
	o := &conceptOverlay{EntityStore: base, src: src}
	if b, ok := base.(MembershipBatcher); ok {
		return &batchingConceptOverlay{conceptOverlay: o, batcher: b}
	}
	return o
}

type conceptOverlay struct {
	EntityStore
	src ConceptSource
}

func (o *conceptOverlay) ListConcepts(ctx context.Context) ([]prereq.Concept, error) {
	return o.src.ListConcepts(ctx)
}

func (o *conceptOverlay) ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error) {
	return o.src.ListPrerequisiteEdges(ctx)
}

type batchingConceptOverlay struct {
	*conceptOverlay
	batcher MembershipBatcher
}

func (o *batchingConceptOverlay) ListCourseConceptsByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]string, error) {
	return o.batcher.ListCourseConceptsByCourseIDs(ctx, courseIDs)
}
