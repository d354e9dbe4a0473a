package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"warga-be-svc/internal/models/response"
	"warga-be-svc/internal/repository"
	"warga-be-svc/pkg/logger"
)

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetResidentSummary(userID uint) (*response.DashboardSummaryResponse, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	dashboardRepo    repository.DashboardRepository
	vehicleRepo      repository.VehicleRepository
	announcementRepo repository.AnnouncementRepository
	logger           *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	vehicleRepo repository.VehicleRepository,
	announcementRepo repository.AnnouncementRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		dashboardRepo:    dashboardRepo,
		vehicleRepo:      vehicleRepo,
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// GetResidentSummary aggregates the resident's home screen figures
func (s *dashboardService) GetResidentSummary(userID uint) (*response.DashboardSummaryResponse, error) {
	summary, err := s.dashboardRepo.GetResidentSummary(userID, time.Now())
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to get dashboard summary")
		return nil, err
	}

	vehicles, err := s.vehicleRepo.CountByUser(userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to count registered vehicles")
		return nil, err
	}
	summary.RegisteredVehicles = vehicles

	latest, err := s.announcementRepo.GetLatestActive()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithError(err).Error("Failed to get latest announcement")
		}
	} else {
		summary.LatestAnnouncement = latest
	}

	return summary, nil
}
