package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type CourseRepo interface {
	Upsert(dbc dbctx.Context, rows []*types.Course) error
	GetByID(dbc dbctx.Context, id string) (*types.Course, error)
	GetByName(dbc dbctx.Context, name string) (*types.Course, error)
	GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Course, error)
	ListExcluding(dbc dbctx.Context, excludeID string) ([]*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Upsert(dbc dbctx.Context, rows []*types.Course) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "prerequisites", "difficulty", "about", "metadata", "updated_at",
			}),
		}).
		Create(&rows).Error
}

// GetByID returns (nil, nil) when the course does not exist.
func (r *courseRepo) GetByID(dbc dbctx.Context, id string) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var c types.Course
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByName matches the trimmed name exactly. Returns (nil, nil) when absent.
func (r *courseRepo) GetByName(dbc dbctx.Context, name string) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var c types.Course
	err := t.WithContext(dbc.Ctx).Where("name = ?", name).Order("id ASC").Limit(1).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) ListExcluding(dbc dbctx.Context, excludeID string) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	q := t.WithContext(dbc.Ctx).Order("id ASC")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
