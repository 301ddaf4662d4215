package catalog

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/prereqpath-backend/internal/domain/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/dbctx"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type PrerequisiteDependencyRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.PrerequisiteDependency) (int, error)
	ListAll(dbc dbctx.Context) ([]*types.PrerequisiteDependency, error)
	GetByTargetIDs(dbc dbctx.Context, targetIDs []string) ([]*types.PrerequisiteDependency, error)
}

type prerequisiteDependencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrerequisiteDependencyRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteDependencyRepo {
	return &prerequisiteDependencyRepo{db: db, log: baseLog.With("repo", "PrerequisiteDependencyRepo")}
}

func (r *prerequisiteDependencyRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.PrerequisiteDependency) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "prerequisite_id"}, {Name: "target_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *prerequisiteDependencyRepo) ListAll(dbc dbctx.Context) ([]*types.PrerequisiteDependency, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.PrerequisiteDependency
	if err := t.WithContext(dbc.Ctx).
		Order("target_id ASC, prerequisite_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *prerequisiteDependencyRepo) GetByTargetIDs(dbc dbctx.Context, targetIDs []string) ([]*types.PrerequisiteDependency, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.PrerequisiteDependency
	if len(targetIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("target_id IN ?", targetIDs).
		Order("target_id ASC, prerequisite_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
