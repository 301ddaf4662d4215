package catalog

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID   string `gorm:"column:id;type:varchar(191);primaryKey" json:"id"`
	Name string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_course_name" json:"name"`
	// Prerequisites is free text from the dataset; "无。" means none.
	Prerequisites string   `gorm:"column:prerequisites;type:text" json:"prerequisites"`
	Difficulty    *float64 `gorm:"column:difficulty" json:"difficulty,omitempty"`
	About         string   `gorm:"column:about;type:text" json:"about"`
	// Metadata holds dataset extras such as chapter and video_order.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
