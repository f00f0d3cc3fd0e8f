package models

import (
	"time"

	"gorm.io/gorm"
)

// JobType represents a named category of work in the catalog.
// Deletion is soft: removed types keep their row (and a deletion timestamp)
// so historical jobs keep a valid foreign key and admins can list them.
type JobType struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description *string        `json:"description"` // nullable, stored as NULL when omitted
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the JobType model
func (JobType) TableName() string {
	return "job_types"
}
