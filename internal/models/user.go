package models

import (
	"time"
)

// User roles
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

// User represents the users table
type User struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	DocumentID        string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	Username          string    `json:"username" gorm:"column:username"`
	Email             string    `json:"email" gorm:"column:email;uniqueIndex"`
	Password          string    `json:"-" gorm:"column:password"`
	FullName          string    `json:"full_name" gorm:"column:full_name"`
	Phone             string    `json:"phone" gorm:"column:phone"`
	UnitNumber        string    `json:"unit_number" gorm:"column:unit_number"`
	Role              string    `json:"role" gorm:"column:role;default:resident"`
	Active            *bool     `json:"active" gorm:"column:active;default:true"`
	DeactivatedReason *string   `json:"deactivated_reason,omitempty" gorm:"column:deactivated_reason"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may sign in and use the API
func (u *User) IsActive() bool {
	return u.Active == nil || *u.Active
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
