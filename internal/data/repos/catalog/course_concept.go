package catalog

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type CourseConceptRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.CourseConcept) (int, error)
	GetConceptIDsByCourseID(dbc dbctx.Context, courseID string) ([]string, error)
	// GetConceptIDsByCourseIDs returns concept ids keyed by course id in one query.
	GetConceptIDsByCourseIDs(dbc dbctx.Context, courseIDs []string) (map[string][]string, error)
}

type courseConceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseConceptRepo(db *gorm.DB, baseLog *logger.Logger) CourseConceptRepo {
	return &courseConceptRepo{db: db, log: baseLog.With("repo", "CourseConceptRepo")}
}

func (r *courseConceptRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.CourseConcept) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "concept_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *courseConceptRepo) GetConceptIDsByCourseID(dbc dbctx.Context, courseID string) ([]string, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []string
	if err := t.WithContext(dbc.Ctx).
		Model(&types.CourseConcept{}).
		Where("course_id = ?", courseID).
		Order("concept_id ASC").
		Pluck("concept_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseConceptRepo) GetConceptIDsByCourseIDs(dbc dbctx.Context, courseIDs []string) (map[string][]string, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := make(map[string][]string, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}
	var rows []*types.CourseConcept
	if err := t.WithContext(dbc.Ctx).
		Where("course_id IN ?", courseIDs).
		Order("course_id ASC, concept_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CourseID] = append(out[row.CourseID], row.ConceptID)
	}
	return out, nil
}
