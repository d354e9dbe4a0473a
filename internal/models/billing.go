package models

import (
	"time"
)

// Billing statuses
const (
	BillingStatusUnpaid              = "unpaid"
	BillingStatusWaitingVerification = "waiting_verification"
	BillingStatusPaid                = "paid"
)

// Billing risk levels derived from the due date
const (
	RiskOverdue = "overdue"
	RiskDueSoon = "due_soon"
	RiskSafe    = "safe"
	RiskNone    = "none"
)

// Billing represents the billings table
type Billing struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	DocumentID      string     `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	UserID          uint       `json:"user_id" gorm:"column:user_id;index"`
	Title           string     `json:"title" gorm:"column:title"`
	Description     string     `json:"description" gorm:"column:description"`
	Month           int        `json:"month" gorm:"column:month"`
	Year            int        `json:"year" gorm:"column:year"`
	Amount          int64      `json:"amount" gorm:"column:amount"`
	DueDate         time.Time  `json:"due_date" gorm:"column:due_date"`
	Status          string     `json:"status" gorm:"column:status;default:unpaid"`
	ProofURL        *string    `json:"proof_url,omitempty" gorm:"column:proof_url"`
	ProofNote       *string    `json:"proof_note,omitempty" gorm:"column:proof_note"`
	ProofUploadedAt *time.Time `json:"proof_uploaded_at,omitempty" gorm:"column:proof_uploaded_at"`
	Payments        []Payment  `json:"payments" gorm:"foreignKey:BillingID"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Billing
func (Billing) TableName() string {
	return "billings"
}

// TotalPaid sums the recorded payments against this billing
func (b *Billing) TotalPaid() int64 {
	var total int64
	for _, p := range b.Payments {
		total += p.Amount
	}
	return total
}

// Balance is the outstanding amount after all recorded payments
func (b *Billing) Balance() int64 {
	return b.Amount - b.TotalPaid()
}

// IsPaid reports whether the billing is settled
func (b *Billing) IsPaid() bool {
	return b.Status == BillingStatusPaid
}

// DaysUntilDue returns whole days between now and the due date, negative when past due.
// Both sides are truncated to calendar dates so the boundary does not shift with
// the time of day.
func (b *Billing) DaysUntilDue(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(b.DueDate.Year(), b.DueDate.Month(), b.DueDate.Day(), 0, 0, 0, 0, now.Location())
	return int(due.Sub(today).Hours() / 24)
}

// RiskLevel classifies an unsettled billing by its due date: overdue when the
// due date has passed, due_soon when it falls within horizonDays (inclusive),
// safe otherwise. Settled billings are excluded from both reminder classes.
func (b *Billing) RiskLevel(now time.Time, horizonDays int) string {
	if b.IsPaid() || b.Balance() <= 0 {
		return RiskNone
	}

	days := b.DaysUntilDue(now)
	switch {
	case days < 0:
		return RiskOverdue
	case days <= horizonDays:
		return RiskDueSoon
	default:
		return RiskSafe
	}
}
