package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values recognized by the authorization checks
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTechnician = "technician"
)

// User represents an account in the system (admin, supervisor, or technician)
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Auth0ID           string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name              string         `gorm:"not null" json:"name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Role              string         `gorm:"not null;default:'technician'" json:"role"` // "admin", "supervisor" or "technician"
	IsAvailable       bool           `gorm:"not null;default:true" json:"is_available"` // technician availability for new assignments
	PreferredLocation *string        `json:"preferred_location"`                        // free-text working area preference
	PreferredLat      *float64       `json:"preferred_lat"`                             // consumed by geographic matching, not computed here
	PreferredLng      *float64       `json:"preferred_lng"`
	PreferredRadiusKM *float64       `json:"preferred_radius_km"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTechnician reports whether the user holds the technician role
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// CanManageJobs reports whether the user may create and assign jobs
func (u *User) CanManageJobs() bool {
	return u.Role == RoleAdmin || u.Role == RoleSupervisor
}
