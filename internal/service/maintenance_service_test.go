package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/realtime"
)

func newMaintenanceFixture(repo *fakeMaintenanceRepo, notifier *fakeNotifier) MaintenanceService {
	return NewMaintenanceService(repo, &fakeObjectStorage{}, notifier, realtime.NewHub(), testLogger())
}

func TestMaintenanceSubmitValidatesType(t *testing.T) {
	repo := &fakeMaintenanceRepo{}
	svc := newMaintenanceFixture(repo, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), 4, MaintenanceSubmission{
		RequestType: "plumbing",
		Description: "The kitchen sink drains slowly",
	})

	require.ErrorIs(t, err, ErrInvalidMaintenanceType)
	assert.Empty(t, repo.created)
}

func TestMaintenanceSubmitWaterLeak(t *testing.T) {
	repo := &fakeMaintenanceRepo{}
	notifier := &fakeNotifier{}
	svc := newMaintenanceFixture(repo, notifier)

	request, err := svc.Submit(context.Background(), 4, MaintenanceSubmission{
		RequestType: models.MaintenanceTypeWater,
		Description: "Water leaks from the bathroom ceiling",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, models.MaintenanceTypeWater, request.RequestType)
	assert.Nil(t, request.ImageURL)

	require.Len(t, notifier.adminCalls, 1)
	assert.Equal(t, models.NotificationTypeMaintenanceSubmitted, notifier.adminCalls[0].notifType)
}

func TestMaintenanceSubmitRejectedWhileActive(t *testing.T) {
	repo := &fakeMaintenanceRepo{activeCount: 1}
	svc := newMaintenanceFixture(repo, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), 4, MaintenanceSubmission{
		RequestType: models.MaintenanceTypeElectricity,
		Description: "The corridor lights flicker constantly",
	})

	require.ErrorIs(t, err, ErrActiveRequestExists)
	assert.Empty(t, repo.created)
}

func TestMaintenanceUpdateOnlyPending(t *testing.T) {
	repo := &fakeMaintenanceRepo{
		byID: map[uint]*models.MaintenanceRequest{
			2: {ID: 2, UserID: 4, RequestType: models.MaintenanceTypeBuilding, Status: models.RequestStatusResolved},
		},
	}
	svc := newMaintenanceFixture(repo, &fakeNotifier{})

	_, err := svc.Update(context.Background(), 4, 2, MaintenanceSubmission{
		RequestType: models.MaintenanceTypeBuilding,
		Description: "Cracked wall near the staircase, second floor",
	})

	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestMaintenanceUpdatePendingSucceeds(t *testing.T) {
	repo := &fakeMaintenanceRepo{
		byID: map[uint]*models.MaintenanceRequest{
			2: {ID: 2, UserID: 4, RequestType: models.MaintenanceTypeWater, Status: models.RequestStatusPending},
		},
	}
	svc := newMaintenanceFixture(repo, &fakeNotifier{})

	request, err := svc.Update(context.Background(), 4, 2, MaintenanceSubmission{
		RequestType: models.MaintenanceTypeElectricity,
		Description: "Turned out to be the water heater wiring",
	})

	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceTypeElectricity, request.RequestType)
	require.Len(t, repo.updated, 1)
}
