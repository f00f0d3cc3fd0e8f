package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Well-known job statuses. Status is free text apart from the completed lock,
// so these are defaults and filter values rather than a closed enum.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Job represents a unit of dispatched work
type Job struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobTypeID    uint           `gorm:"not null;index" json:"job_type_id"`
	JobTypeName  string         `gorm:"not null" json:"job_type_name"` // snapshot taken at creation; renaming the type does not rewrite history
	JobType      JobType        `gorm:"foreignKey:JobTypeID" json:"job_type"`
	Description  string         `gorm:"not null" json:"description"`
	Location     *string        `json:"location"`
	TechnicianID *uint          `gorm:"index" json:"technician_id"` // nullable, set when the job is assigned
	Technician   *User          `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Status       string         `gorm:"not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// IsCompleted reports whether the job has reached the terminal completed
// status. The comparison is case-insensitive; status is otherwise free text.
func (j *Job) IsCompleted() bool {
	return strings.EqualFold(j.Status, StatusCompleted)
}

// CanChangeStatusTo reports whether the job may move to the requested status.
// A completed job accepts no change to a different status; re-marking a
// completed job as completed is allowed as a no-op. Every other transition is
// permitted.
func (j *Job) CanChangeStatusTo(requested string) bool {
	if !j.IsCompleted() {
		return true
	}
	return strings.EqualFold(requested, StatusCompleted)
}

// IsAssignedTo reports whether the given user is the job's assigned technician
func (j *Job) IsAssignedTo(user *User) bool {
	return j.TechnicianID != nil && *j.TechnicianID == user.ID
}
