package response

import (
	"time"
)

// History item kinds
const (
	HistoryKindComplaint      = "complaint"
	HistoryKindMaintenance    = "maintenance"
	HistoryKindPayment        = "payment"
	HistoryKindProofSubmitted = "proof_submitted"
)

// HistoryItem is one entry in the resident's merged activity feed
type HistoryItem struct {
	Kind        string    `json:"kind"`
	ReferenceID string    `json:"reference_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status,omitempty"`
	StatusLabel string    `json:"status_label,omitempty"`
	Amount      *int64    `json:"amount,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
