package repository

import (
	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListForUser(userID uint, includeAdminScope bool, ordered bool) ([]*models.Notification, error)
	MarkRead(id uint) error
	CountUnread(userID uint) (int64, error)
	ExistsByReference(userID uint, notificationType, reference string) (bool, error)
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create inserts a new notification
func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification

	err := r.db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListForUser retrieves notifications addressed to the user, optionally merged
// with the admin-scoped stream for admin accounts. When ordered is false the
// query runs without ORDER BY and the caller sorts the result itself.
func (r *notificationRepository) ListForUser(userID uint, includeAdminScope bool, ordered bool) ([]*models.Notification, error) {
	var notifications []*models.Notification

	query := r.db.Model(&models.Notification{})
	if includeAdminScope {
		query = query.Where(
			"(recipient_scope = ? AND recipient_user_id = ?) OR recipient_scope = ?",
			models.NotificationScopeUser, userID, models.NotificationScopeAdmin,
		)
	} else {
		query = query.Where(
			"recipient_scope = ? AND recipient_user_id = ?",
			models.NotificationScopeUser, userID,
		)
	}
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead flags a notification as read
func (r *notificationRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
}

// CountUnread counts unread notifications addressed to the user
func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Notification{}).
		Where("recipient_scope = ? AND recipient_user_id = ? AND read = ?", models.NotificationScopeUser, userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ExistsByReference reports whether a notification of the given type has
// already been created for the user and reference. Used by the reminder
// scheduler to avoid re-notifying the same billing every run.
func (r *notificationRepository) ExistsByReference(userID uint, notificationType, reference string) (bool, error) {
	var count int64

	err := r.db.Model(&models.Notification{}).
		Where("recipient_scope = ? AND recipient_user_id = ? AND type = ? AND reference = ?",
			models.NotificationScopeUser, userID, notificationType, reference).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
