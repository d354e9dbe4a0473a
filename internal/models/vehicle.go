package models

import (
	"time"
)

// Vehicle types
const (
	VehicleTypeCar        = "car"
	VehicleTypeMotorcycle = "motorcycle"
)

// Vehicle represents the vehicles table
type Vehicle struct {
	ID                  uint      `json:"id" gorm:"primarykey"`
	DocumentID          string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	UserID              uint      `json:"user_id" gorm:"column:user_id;index"`
	PlateNumber         string    `json:"plate_number" gorm:"column:plate_number"`
	Make                string    `json:"make" gorm:"column:make"`
	Model               string    `json:"model" gorm:"column:model"`
	Color               string    `json:"color" gorm:"column:color"`
	Year                int       `json:"year" gorm:"column:year"`
	VehicleType         string    `json:"vehicle_type" gorm:"column:vehicle_type"`
	PhotoURL            *string   `json:"photo_url,omitempty" gorm:"column:photo_url"`
	RegistrationCardURL *string   `json:"registration_card_url,omitempty" gorm:"column:registration_card_url"`
	Status              string    `json:"status" gorm:"column:status;default:pending"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// IsEditable reports whether the resident may still change the registration
func (v *Vehicle) IsEditable() bool {
	return v.Status == RequestStatusPending
}
