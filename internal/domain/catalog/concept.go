package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Concept ids are the dataset's own stable keys (e.g. "K_线性代数").
type Concept struct {
	ID          string `gorm:"column:id;type:varchar(191);primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Explanation string `gorm:"column:explanation;type:text" json:"explanation"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Concept) TableName() string { return "concept" }
