package models

import (
	"time"

	"gorm.io/datatypes"
)

// TechnicianReport is a completion record submitted against a job. Reports
// are immutable once created; a job accumulates them as history.
type TechnicianReport struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	JobID     uint           `gorm:"not null;index" json:"job_id"`
	Job       Job            `gorm:"foreignKey:JobID" json:"-"` // don't include the full job in JSON
	UserID    uint           `gorm:"not null;index" json:"user_id"` // submitting user
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Notes     string         `gorm:"type:text;not null" json:"notes"`
	Images    datatypes.JSON `json:"images"` // ordered array of photo keys/URLs, defaults to []
	Signature *string        `gorm:"type:text" json:"signature"` // optional, opaque encoded image
	ImageURLs []string       `gorm:"-" json:"image_urls,omitempty"` // computed, presigned URLs for stored keys
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for the TechnicianReport model
func (TechnicianReport) TableName() string {
	return "technician_reports"
}
