package response

import (
	"time"

	"warga-be-svc/internal/models"
)

// BillingResponse is a billing row enriched with the derived presentation fields
type BillingResponse struct {
	ID              uint             `json:"id"`
	DocumentID      string           `json:"document_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Month           int              `json:"month"`
	Year            int              `json:"year"`
	Amount          int64            `json:"amount"`
	TotalPaid       int64            `json:"total_paid"`
	Balance         int64            `json:"balance"`
	DueDate         time.Time        `json:"due_date"`
	DaysUntilDue    int              `json:"days_until_due"`
	RiskLevel       string           `json:"risk_level"`
	Status          string           `json:"status"`
	ProofURL        *string          `json:"proof_url,omitempty"`
	ProofNote       *string          `json:"proof_note,omitempty"`
	ProofUploadedAt *time.Time       `json:"proof_uploaded_at,omitempty"`
	Payments        []models.Payment `json:"payments"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewBillingResponse derives the presentation fields for a billing as of now
func NewBillingResponse(b *models.Billing, now time.Time, dueSoonDays int) *BillingResponse {
	return &BillingResponse{
		ID:              b.ID,
		DocumentID:      b.DocumentID,
		Title:           b.Title,
		Description:     b.Description,
		Month:           b.Month,
		Year:            b.Year,
		Amount:          b.Amount,
		TotalPaid:       b.TotalPaid(),
		Balance:         b.Balance(),
		DueDate:         b.DueDate,
		DaysUntilDue:    b.DaysUntilDue(now),
		RiskLevel:       b.RiskLevel(now, dueSoonDays),
		Status:          b.Status,
		ProofURL:        b.ProofURL,
		ProofNote:       b.ProofNote,
		ProofUploadedAt: b.ProofUploadedAt,
		Payments:        b.Payments,
		CreatedAt:       b.CreatedAt,
	}
}

// PaymentLinkResponse is returned when a gateway payment link is created
type PaymentLinkResponse struct {
	BillingID   uint   `json:"billing_id"`
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	Amount      int64  `json:"amount"`
}
