package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/prereqpath-backend/internal/data/repos/catalog"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

type ConceptRepo = catalog.ConceptRepo
type CourseRepo = catalog.CourseRepo
type PrerequisiteDependencyRepo = catalog.PrerequisiteDependencyRepo
type CourseConceptRepo = catalog.CourseConceptRepo

func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	return catalog.NewConceptRepo(db, baseLog)
}
func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, baseLog)
}
func NewPrerequisiteDependencyRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteDependencyRepo {
	return catalog.NewPrerequisiteDependencyRepo(db, baseLog)
}
func NewCourseConceptRepo(db *gorm.DB, baseLog *logger.Logger) CourseConceptRepo {
	return catalog.NewCourseConceptRepo(db, baseLog)
}

// Set bundles every catalog repo over one database.
type Set struct {
	Concepts      ConceptRepo
	Courses       CourseRepo
	Prerequisites PrerequisiteDependencyRepo
	Memberships   CourseConceptRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Concepts:      NewConceptRepo(db, baseLog),
		Courses:       NewCourseRepo(db, baseLog),
		Prerequisites: NewPrerequisiteDependencyRepo(db, baseLog),
		Memberships:   NewCourseConceptRepo(db, baseLog),
	}
}
