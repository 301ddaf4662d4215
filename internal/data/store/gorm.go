package store

import (
	"context"

	"github.com/yungbote/prereqpath-backend/internal/data/repos"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

// Gorm serves the EntityStore and MembershipBatcher from the catalog repos.
type Gorm struct {
	repos repos.Set
	log   *logger.Logger
}

func NewGorm(r repos.Set, log *logger.Logger) *Gorm {
	return &Gorm{repos: r, log: log.With("store", "Gorm")}
}

func (s *Gorm) ListConcepts(ctx context.Context) ([]prereq.Concept, error) {
	rows, err := s.repos.Concepts.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	out := make([]prereq.Concept, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToPrereq())
	}
	return out, nil
}

func (s *Gorm) ListPrerequisiteEdges(ctx context.Context) ([]prereq.PrerequisiteEdge, error) {
	rows, err := s.repos.Prerequisites.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	out := make([]prereq.PrerequisiteEdge, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToPrereq())
	}
	return out, nil
}

func (s *Gorm) GetCourse(ctx context.Context, id string) (prereq.Course, bool, error) {
	row, err := s.repos.Courses.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil || row == nil {
		return prereq.Course{}, false, err
	}
	return row.ToPrereq(), true, nil
}

func (s *Gorm) FindCourseByName(ctx context.Context, name string) (prereq.Course, bool, error) {
	row, err := s.repos.Courses.GetByName(dbctx.Context{Ctx: ctx}, name)
	if err != nil || row == nil {
		return prereq.Course{}, false, err
	}
	return row.ToPrereq(), true, nil
}

func (s *Gorm) ListCandidateCourses(ctx context.Context, excluding string) ([]prereq.Course, error) {
	rows, err := s.repos.Courses.ListExcluding(dbctx.Context{Ctx: ctx}, excluding)
	if err != nil {
		return nil, err
	}
	out := make([]prereq.Course, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToPrereq())
	}
	return out, nil
}

func (s *Gorm) GetCourseConcepts(ctx context.Context, courseID string) ([]string, error) {
	return s.repos.Memberships.GetConceptIDsByCourseID(dbctx.Context{Ctx: ctx}, courseID)
}

func (s *Gorm) ListCourseConceptsByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]string, error) {
	return s.repos.Memberships.GetConceptIDsByCourseIDs(dbctx.Context{Ctx: ctx}, courseIDs)
}
