package models

import (
	"time"
)

// Notification recipient scopes
const (
	NotificationScopeAdmin = "admin"
	NotificationScopeUser  = "user"
)

// Notification types
const (
	NotificationTypeComplaintSubmitted   = "complaint_submitted"
	NotificationTypeMaintenanceSubmitted = "maintenance_submitted"
	NotificationTypeProofSubmitted       = "billing_proof_submitted"
	NotificationTypeVehicleSubmitted     = "vehicle_submitted"
	NotificationTypeBillingDueSoon       = "billing_due_soon"
	NotificationTypeBillingOverdue       = "billing_overdue"
	NotificationTypeBillingPaid          = "billing_paid"
)

// Notification represents the notifications table
type Notification struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	DocumentID      string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	RecipientScope  string    `json:"recipient_scope" gorm:"column:recipient_scope;index"`
	RecipientUserID *uint     `json:"recipient_user_id,omitempty" gorm:"column:recipient_user_id;index"`
	Type            string    `json:"type" gorm:"column:type"`
	Subject         string    `json:"subject" gorm:"column:subject"`
	Message         string    `json:"message" gorm:"column:message"`
	Reference       *string   `json:"reference,omitempty" gorm:"column:reference;index"`
	Read            bool      `json:"read" gorm:"column:read;default:false"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName sets the insert table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
