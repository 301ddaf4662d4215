package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrerequisiteDependency means PrerequisiteID must be learned before TargetID.
type PrerequisiteDependency struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrerequisiteID string    `gorm:"column:prerequisite_id;type:varchar(191);not null;index:idx_prereq_dep,unique,priority:1" json:"prerequisite_id"`
	TargetID       string    `gorm:"column:target_id;type:varchar(191);not null;index:idx_prereq_dep,unique,priority:2;index" json:"target_id"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PrerequisiteDependency) TableName() string { return "prerequisite_dependency" }

func (r *PrerequisiteDependency) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// CourseConcept is one course-to-concept membership row.
type CourseConcept struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  string    `gorm:"column:course_id;type:varchar(191);not null;index:idx_course_concept,unique,priority:1" json:"course_id"`
	ConceptID string    `gorm:"column:concept_id;type:varchar(191);not null;index:idx_course_concept,unique,priority:2;index" json:"concept_id"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseConcept) TableName() string { return "course_concept" }

func (r *CourseConcept) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
