package service

import (
	"fmt"
	"sort"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"
	"warga-be-svc/internal/repository"
	"warga-be-svc/pkg/logger"
)

// HistoryService aggregates the resident's activity across entity types
type HistoryService interface {
	List(userID uint, page, limit int) ([]*response.HistoryItem, int64, error)
}

// historyService implements HistoryService
type historyService struct {
	billingRepo     repository.BillingRepository
	complaintRepo   repository.ComplaintRepository
	maintenanceRepo repository.MaintenanceRepository
	logger          *logger.Logger
}

// NewHistoryService creates a new instance of HistoryService
func NewHistoryService(
	billingRepo repository.BillingRepository,
	complaintRepo repository.ComplaintRepository,
	maintenanceRepo repository.MaintenanceRepository,
	logger *logger.Logger,
) HistoryService {
	return &historyService{
		billingRepo:     billingRepo,
		complaintRepo:   complaintRepo,
		maintenanceRepo: maintenanceRepo,
		logger:          logger,
	}
}

// List merges complaints, maintenance requests, payments and proof
// submissions into one feed sorted by time descending.
func (s *historyService) List(userID uint, page, limit int) ([]*response.HistoryItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var items []*response.HistoryItem

	complaints, err := s.complaintRepo.ListByUser(userID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}
	for _, c := range complaints {
		items = append(items, &response.HistoryItem{
			Kind:        response.HistoryKindComplaint,
			ReferenceID: c.DocumentID,
			Title:       c.Subject,
			Status:      c.Status,
			StatusLabel: models.RequestStatusLabel(c.Status),
			OccurredAt:  c.CreatedAt,
		})
	}

	requests, err := s.maintenanceRepo.ListByUser(userID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	for _, m := range requests {
		items = append(items, &response.HistoryItem{
			Kind:        response.HistoryKindMaintenance,
			ReferenceID: m.DocumentID,
			Title:       fmt.Sprintf("%s maintenance", m.RequestType),
			Status:      m.Status,
			StatusLabel: models.RequestStatusLabel(m.Status),
			OccurredAt:  m.CreatedAt,
		})
	}

	billings, err := s.billingRepo.ListByUser(userID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list billings: %w", err)
	}
	for _, b := range billings {
		for i := range b.Payments {
			p := b.Payments[i]
			amount := p.Amount
			items = append(items, &response.HistoryItem{
				Kind:        response.HistoryKindPayment,
				ReferenceID: b.DocumentID,
				Title:       fmt.Sprintf("Payment for %s", b.Title),
				Amount:      &amount,
				OccurredAt:  p.PaidAt,
			})
		}
		if b.ProofUploadedAt != nil {
			items = append(items, &response.HistoryItem{
				Kind:        response.HistoryKindProofSubmitted,
				ReferenceID: b.DocumentID,
				Title:       fmt.Sprintf("Payment proof for %s", b.Title),
				Status:      b.Status,
				OccurredAt:  *b.ProofUploadedAt,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})

	total := int64(len(items))
	start := (page - 1) * limit
	if start >= len(items) {
		return []*response.HistoryItem{}, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], total, nil
}
