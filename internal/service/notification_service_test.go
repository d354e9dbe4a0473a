package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warga-be-svc/internal/config"
	"warga-be-svc/internal/models"
	"warga-be-svc/internal/realtime"
)

func newNotificationFixture(repo *fakeNotificationRepo, hub *realtime.Hub) NotificationService {
	return NewNotificationService(repo, hub, config.WebhookConfig{}, testLogger())
}

func signalReceived(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestMarkReadRefreshesAdminStream(t *testing.T) {
	note := &models.Notification{ID: 1, RecipientScope: models.NotificationScopeAdmin, Subject: "Payment proof submitted"}
	repo := &fakeNotificationRepo{byID: map[uint]*models.Notification{1: note}}

	hub := realtime.NewHub()
	adminCh, cancelAdmin := hub.Subscribe(realtime.TopicNotifications, realtime.BroadcastScope)
	defer cancelAdmin()
	userCh, cancelUser := hub.Subscribe(realtime.TopicNotifications, 9)
	defer cancelUser()

	svc := newNotificationFixture(repo, hub)
	require.NoError(t, svc.MarkRead(9, 1, true))

	assert.Contains(t, repo.read, uint(1))
	// Admin watchers subscribe on the broadcast scope, so the signal must
	// land there rather than on the marking admin's own scope
	assert.True(t, signalReceived(adminCh))
	assert.False(t, signalReceived(userCh))
}

func TestMarkReadRefreshesOwnerStream(t *testing.T) {
	owner := uint(5)
	note := &models.Notification{ID: 2, RecipientScope: models.NotificationScopeUser, RecipientUserID: &owner, Subject: "Billing due soon"}
	repo := &fakeNotificationRepo{byID: map[uint]*models.Notification{2: note}}

	hub := realtime.NewHub()
	ownerCh, cancelOwner := hub.Subscribe(realtime.TopicNotifications, owner)
	defer cancelOwner()
	adminCh, cancelAdmin := hub.Subscribe(realtime.TopicNotifications, realtime.BroadcastScope)
	defer cancelAdmin()

	svc := newNotificationFixture(repo, hub)
	require.NoError(t, svc.MarkRead(owner, 2, false))

	assert.True(t, signalReceived(ownerCh))
	assert.False(t, signalReceived(adminCh))
}

func TestMarkReadHidesForeignNotifications(t *testing.T) {
	owner := uint(5)
	userNote := &models.Notification{ID: 2, RecipientScope: models.NotificationScopeUser, RecipientUserID: &owner}
	adminNote := &models.Notification{ID: 3, RecipientScope: models.NotificationScopeAdmin}
	repo := &fakeNotificationRepo{byID: map[uint]*models.Notification{2: userNote, 3: adminNote}}

	svc := newNotificationFixture(repo, realtime.NewHub())

	// Another resident's notification and the admin stream are both hidden
	// from a non-admin caller
	assert.ErrorIs(t, svc.MarkRead(6, 2, false), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(6, 3, false), ErrNotFound)
	assert.Empty(t, repo.read)
}
