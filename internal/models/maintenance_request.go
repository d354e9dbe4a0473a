package models

import (
	"time"
)

// Maintenance request types
const (
	MaintenanceTypeWater       = "water"
	MaintenanceTypeElectricity = "electricity"
	MaintenanceTypeBuilding    = "building"
)

// MaintenanceTypes lists all valid maintenance request types
var MaintenanceTypes = []string{
	MaintenanceTypeWater,
	MaintenanceTypeElectricity,
	MaintenanceTypeBuilding,
}

// ValidMaintenanceType reports whether t is one of the known request types
func ValidMaintenanceType(t string) bool {
	for _, known := range MaintenanceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MaintenanceRequest represents the maintenance_requests table
type MaintenanceRequest struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	DocumentID      string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	UserID          uint      `json:"user_id" gorm:"column:user_id;index"`
	RequestType     string    `json:"request_type" gorm:"column:request_type"`
	Description     string    `json:"description" gorm:"column:description"`
	ImageURL        *string   `json:"image_url,omitempty" gorm:"column:image_url"`
	Status          string    `json:"status" gorm:"column:status;default:pending"`
	RejectionReason *string   `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName sets the insert table name for MaintenanceRequest
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// IsActive reports whether the request still blocks a new submission
func (m *MaintenanceRequest) IsActive() bool {
	return m.Status == RequestStatusPending || m.Status == RequestStatusInProgress
}

// IsEditable reports whether the resident may still change the request
func (m *MaintenanceRequest) IsEditable() bool {
	return m.Status == RequestStatusPending
}
