package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"
)

func TestHistoryMergesSourcesNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	proofAt := base.Add(72 * time.Hour)

	complaintRepo := &fakeComplaintRepo{
		list: []*models.Complaint{
			{UserID: 5, DocumentID: "cmp-1", Subject: "Broken gate", Status: models.RequestStatusResolved, CreatedAt: base},
		},
	}
	maintenanceRepo := &fakeMaintenanceRepo{
		list: []*models.MaintenanceRequest{
			{UserID: 5, DocumentID: "mnt-1", RequestType: models.MaintenanceTypeWater, Status: models.RequestStatusPending, CreatedAt: base.Add(48 * time.Hour)},
		},
	}
	billingRepo := &fakeBillingRepo{
		list: []*models.Billing{
			{
				UserID:          5,
				DocumentID:      "blg-1",
				Title:           "IPL March",
				Status:          models.BillingStatusPaid,
				ProofUploadedAt: &proofAt,
				Payments: []models.Payment{
					{Amount: 100000, PaidAt: base.Add(24 * time.Hour)},
				},
			},
		},
	}

	svc := NewHistoryService(billingRepo, complaintRepo, maintenanceRepo, testLogger())

	items, total, err := svc.List(5, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, items, 4)

	// Newest first across all sources
	assert.Equal(t, response.HistoryKindProofSubmitted, items[0].Kind)
	assert.Equal(t, response.HistoryKindMaintenance, items[1].Kind)
	assert.Equal(t, response.HistoryKindPayment, items[2].Kind)
	assert.Equal(t, response.HistoryKindComplaint, items[3].Kind)

	require.NotNil(t, items[2].Amount)
	assert.Equal(t, int64(100000), *items[2].Amount)
}

func TestHistoryPaginatesInMemory(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var complaints []*models.Complaint
	for i := 0; i < 5; i++ {
		complaints = append(complaints, &models.Complaint{
			UserID:     5,
			DocumentID: string(rune('a' + i)),
			Subject:    "Complaint",
			Status:     models.RequestStatusResolved,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
	}

	svc := NewHistoryService(&fakeBillingRepo{}, &fakeComplaintRepo{list: complaints}, &fakeMaintenanceRepo{}, testLogger())

	page1, total, err := svc.List(5, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := svc.List(5, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)

	beyond, _, err := svc.List(5, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
