package catalog

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type ConceptRepo interface {
	Upsert(dbc dbctx.Context, rows []*types.Concept) error
	GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Concept, error)
	ListAll(dbc dbctx.Context) ([]*types.Concept, error)
	Count(dbc dbctx.Context) (int64, error)
}

type conceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	return &conceptRepo{db: db, log: baseLog.With("repo", "ConceptRepo")}
}

func (r *conceptRepo) Upsert(dbc dbctx.Context, rows []*types.Concept) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "explanation", "updated_at"}),
		}).
		Create(&rows).Error
}

func (r *conceptRepo) GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Concept, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Concept
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conceptRepo) ListAll(dbc dbctx.Context) ([]*types.Concept, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Concept
	if err := t.WithContext(dbc.Ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conceptRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Concept{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
