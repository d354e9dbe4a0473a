package service

import (
	"time"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/repository"
	"warga-be-svc/pkg/logger"
)

// AnnouncementService defines the interface for announcement read operations
type AnnouncementService interface {
	ListActive() ([]*models.Announcement, error)
}

// announcementService implements AnnouncementService
type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	logger           *logger.Logger
}

// NewAnnouncementService creates a new instance of AnnouncementService
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, logger *logger.Logger) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// ListActive retrieves active announcements, newest first
func (s *announcementService) ListActive() ([]*models.Announcement, error) {
	return listWithOrderFallback(s.logger, "announcements",
		func(ordered bool) ([]*models.Announcement, error) {
			return s.announcementRepo.ListActive(ordered)
		},
		func(a *models.Announcement) time.Time { return a.CreatedAt },
	)
}
