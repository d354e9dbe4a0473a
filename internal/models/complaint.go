package models

import (
	"time"
)

// Complaint represents the complaints table
type Complaint struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	DocumentID      string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	UserID          uint      `json:"user_id" gorm:"column:user_id;index"`
	Subject         string    `json:"subject" gorm:"column:subject"`
	Description     string    `json:"description" gorm:"column:description"`
	ImageURL        *string   `json:"image_url,omitempty" gorm:"column:image_url"`
	Status          string    `json:"status" gorm:"column:status;default:pending"`
	RejectionReason *string   `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Complaint
func (Complaint) TableName() string {
	return "complaints"
}

// IsActive reports whether the complaint still blocks a new submission
func (c *Complaint) IsActive() bool {
	return c.Status == RequestStatusPending || c.Status == RequestStatusInProgress
}

// IsEditable reports whether the resident may still change the complaint
func (c *Complaint) IsEditable() bool {
	return c.Status == RequestStatusPending
}
