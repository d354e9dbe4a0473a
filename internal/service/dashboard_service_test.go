package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"
)

func TestDashboardSummaryCountsVehiclesFromRegistry(t *testing.T) {
	dash := &fakeDashboardRepo{summary: &response.DashboardSummaryResponse{
		OutstandingBalance: 150000,
		UnpaidBillings:     3,
	}}
	vehicles := &fakeVehicleRepo{byID: map[uint]*models.Vehicle{
		1: {ID: 1, UserID: 5, PlateNumber: "B 1234 ABC"},
		2: {ID: 2, UserID: 5, PlateNumber: "B 5678 DEF"},
	}}
	announcements := &fakeAnnouncementRepo{latest: &models.Announcement{ID: 7, Title: "Water outage"}}
	svc := NewDashboardService(dash, vehicles, announcements, testLogger())

	summary, err := svc.GetResidentSummary(5)

	require.NoError(t, err)
	assert.Equal(t, int64(150000), summary.OutstandingBalance)
	assert.Equal(t, int64(3), summary.UnpaidBillings)
	assert.Equal(t, int64(2), summary.RegisteredVehicles)
	require.NotNil(t, summary.LatestAnnouncement)
	assert.Equal(t, "Water outage", summary.LatestAnnouncement.Title)
}

func TestDashboardSummaryWithoutAnnouncements(t *testing.T) {
	dash := &fakeDashboardRepo{summary: &response.DashboardSummaryResponse{}}
	svc := NewDashboardService(dash, &fakeVehicleRepo{}, &fakeAnnouncementRepo{}, testLogger())

	summary, err := svc.GetResidentSummary(5)

	require.NoError(t, err)
	assert.Nil(t, summary.LatestAnnouncement)
	assert.Equal(t, int64(0), summary.RegisteredVehicles)
}
