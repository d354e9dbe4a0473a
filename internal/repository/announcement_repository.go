package repository

import (
	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcement data operations
type AnnouncementRepository interface {
	ListActive(ordered bool) ([]*models.Announcement, error)
	GetLatestActive() (*models.Announcement, error)
}

// announcementRepository implements AnnouncementRepository
type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new instance of AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{
		db: db,
	}
}

// ListActive retrieves active announcements. When ordered is false the query
// runs without ORDER BY and the caller sorts the result itself.
func (r *announcementRepository) ListActive(ordered bool) ([]*models.Announcement, error) {
	var announcements []*models.Announcement

	query := r.db.Where("active = ?", true)
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

// GetLatestActive retrieves the most recent active announcement
func (r *announcementRepository) GetLatestActive() (*models.Announcement, error) {
	var announcement models.Announcement

	err := r.db.Where("active = ?", true).Order("created_at DESC").First(&announcement).Error
	if err != nil {
		return nil, err
	}

	return &announcement, nil
}
