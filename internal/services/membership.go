package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/observability"
)

// fetchMembership loads the concept ids of every course in courseIDs. Stores
// that batch answer in one call. Otherwise courses are fetched concurrently
// with at most limit requests in flight, and the merge happens only after
// every fetch returned.
func fetchMembership(ctx context.Context, s store.EntityStore, courseIDs []string, limit int) (map[string][]string, error) {
	start := time.Now()
	if b, ok := s.(store.MembershipBatcher); ok {
		out, err := b.ListCourseConceptsByCourseIDs(ctx, courseIDs)
		observability.ObserveMembershipFetch("batch", time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("batch course concepts: %w", err)
		}
		if out == nil {
			out = map[string][]string{}
		}
		return out, nil
	}

	if limit <= 0 {
		limit = 8
	}
	results := make([][]string, len(courseIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range courseIDs {
		i, id := i, id
		g.Go(func() error {
			ids, err := s.GetCourseConcepts(gctx, id)
			if err != nil {
				return fmt.Errorf("course %s concepts: %w", id, err)
			}
			results[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	observability.ObserveMembershipFetch("fanout", time.Since(start))

	out := make(map[string][]string, len(courseIDs))
	for i, id := range courseIDs {
		out[id] = results[i]
	}
	return out, nil
}
