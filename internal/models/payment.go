package models

import "time"

// Payment represents the payments table, one row per settled amount against a billing
type Payment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	BillingID uint      `json:"billing_id" gorm:"column:billing_id;index"`
	Amount    int64     `json:"amount" gorm:"column:amount"`
	Method    string    `json:"method" gorm:"column:method"`
	Reference *string   `json:"reference,omitempty" gorm:"column:reference"`
	Note      *string   `json:"note,omitempty" gorm:"column:note"`
	PaidAt    time.Time `json:"paid_at" gorm:"column:paid_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}
