package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"warga-be-svc/internal/config"
	"warga-be-svc/internal/models"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/repository"
	"warga-be-svc/pkg/logger"
)

// NotificationService defines the interface for notification operations.
// NotifyAdmins and NotifyUser are best-effort: their failures are logged and
// never propagated to the operation that triggered them.
type NotificationService interface {
	NotifyAdmins(notificationType, subject, message string, reference string)
	NotifyUser(userID uint, notificationType, subject, message string, reference string)
	HasUserNotification(userID uint, notificationType, reference string) (bool, error)
	ListForUser(userID uint, includeAdminScope bool) ([]*models.Notification, error)
	MarkRead(userID uint, notificationID uint, isAdmin bool) error
	CountUnread(userID uint) (int64, error)
}

// notificationService implements NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              *realtime.Hub
	webhookClient    *resty.Client
	webhookURL       string
	logger           *logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	hub *realtime.Hub,
	webhookConfig config.WebhookConfig,
	logger *logger.Logger,
) NotificationService {
	client := resty.New().
		SetTimeout(time.Duration(webhookConfig.TimeoutSeconds) * time.Second).
		SetRetryCount(0)

	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		webhookClient:    client,
		webhookURL:       webhookConfig.AdminURL,
		logger:           logger,
	}
}

// NotifyAdmins creates an admin-scoped notification document and, when an
// admin webhook is configured, POSTs the payload there as well. Both legs are
// best-effort.
func (s *notificationService) NotifyAdmins(notificationType, subject, message string, reference string) {
	notification := &models.Notification{
		DocumentID:     uuid.New().String(),
		RecipientScope: models.NotificationScopeAdmin,
		Type:           notificationType,
		Subject:        subject,
		Message:        message,
		Reference:      refPtr(reference),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithField("type", notificationType).Error("Failed to create admin notification")
	} else {
		s.hub.Publish(realtime.TopicNotifications, realtime.BroadcastScope)
	}

	s.postAdminWebhook(notificationType, subject, message, reference)
}

// NotifyUser creates a user-scoped notification document, best-effort
func (s *notificationService) NotifyUser(userID uint, notificationType, subject, message string, reference string) {
	notification := &models.Notification{
		DocumentID:      uuid.New().String(),
		RecipientScope:  models.NotificationScopeUser,
		RecipientUserID: &userID,
		Type:            notificationType,
		Subject:         subject,
		Message:         message,
		Reference:       refPtr(reference),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"type":    notificationType,
			"user_id": userID,
		}).Error("Failed to create user notification")
		return
	}

	s.hub.Publish(realtime.TopicNotifications, userID)
}

// HasUserNotification reports whether the user was already notified for the
// given type and reference
func (s *notificationService) HasUserNotification(userID uint, notificationType, reference string) (bool, error) {
	return s.notificationRepo.ExistsByReference(userID, notificationType, reference)
}

// ListForUser retrieves the user's notification feed, newest first
func (s *notificationService) ListForUser(userID uint, includeAdminScope bool) ([]*models.Notification, error) {
	return listWithOrderFallback(s.logger, "notifications",
		func(ordered bool) ([]*models.Notification, error) {
			return s.notificationRepo.ListForUser(userID, includeAdminScope, ordered)
		},
		func(n *models.Notification) time.Time { return n.CreatedAt },
	)
}

// MarkRead flags a notification as read. A resident may only touch
// notifications addressed to them.
func (s *notificationService) MarkRead(userID uint, notificationID uint, isAdmin bool) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load notification: %w", err)
	}

	owned := notification.RecipientScope == models.NotificationScopeUser &&
		notification.RecipientUserID != nil && *notification.RecipientUserID == userID
	adminScoped := notification.RecipientScope == models.NotificationScopeAdmin && isAdmin
	if !owned && !adminScoped {
		return ErrNotFound
	}

	if err := s.notificationRepo.MarkRead(notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	// Refresh the stream the notification lives on: admin-scoped
	// notifications are watched on the broadcast scope.
	scope := userID
	if notification.RecipientScope == models.NotificationScopeAdmin {
		scope = realtime.BroadcastScope
	}
	s.hub.Publish(realtime.TopicNotifications, scope)
	return nil
}

// CountUnread counts unread notifications addressed to the user
func (s *notificationService) CountUnread(userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// postAdminWebhook delivers the notification to the configured admin channel
func (s *notificationService) postAdminWebhook(notificationType, subject, message, reference string) {
	if s.webhookURL == "" {
		return
	}

	resp, err := s.webhookClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"type":      notificationType,
			"subject":   subject,
			"message":   message,
			"reference": reference,
		}).
		Post(s.webhookURL)
	if err != nil {
		s.logger.WithError(err).WithField("type", notificationType).Warn("Admin webhook delivery failed")
		return
	}
	if resp.IsError() {
		s.logger.WithFields(map[string]interface{}{
			"type":   notificationType,
			"status": resp.StatusCode(),
		}).Warn("Admin webhook returned an error status")
	}
}

// refPtr returns nil for an empty reference
func refPtr(reference string) *string {
	if reference == "" {
		return nil
	}
	return &reference
}
