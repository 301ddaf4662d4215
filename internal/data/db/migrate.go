package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/prereqpath-backend/internal/domain/catalog"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Concept{},
		&catalog.Course{},
		&catalog.PrerequisiteDependency{},
		&catalog.CourseConcept{},
	)
}
