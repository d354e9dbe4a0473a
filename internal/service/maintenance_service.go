package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/repository"
	"warga-be-svc/internal/storage"
	"warga-be-svc/pkg/logger"
)

// MaintenanceSubmission carries the validated form state of a maintenance request
type MaintenanceSubmission struct {
	RequestType string
	Description string
	Image       *UploadedFile
}

// MaintenanceService defines the interface for maintenance request business operations
type MaintenanceService interface {
	List(userID uint) ([]*models.MaintenanceRequest, error)
	Submit(ctx context.Context, userID uint, submission MaintenanceSubmission) (*models.MaintenanceRequest, error)
	Update(ctx context.Context, userID uint, requestID uint, submission MaintenanceSubmission) (*models.MaintenanceRequest, error)
}

// maintenanceService implements MaintenanceService
type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	store           storage.ObjectStorage
	notifier        NotificationService
	hub             *realtime.Hub
	logger          *logger.Logger
}

// NewMaintenanceService creates a new instance of MaintenanceService
func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	store storage.ObjectStorage,
	notifier NotificationService,
	hub *realtime.Hub,
	logger *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		store:           store,
		notifier:        notifier,
		hub:             hub,
		logger:          logger,
	}
}

// List retrieves the resident's maintenance requests, newest first
func (s *maintenanceService) List(userID uint) ([]*models.MaintenanceRequest, error) {
	return listWithOrderFallback(s.logger, "maintenance_requests",
		func(ordered bool) ([]*models.MaintenanceRequest, error) {
			return s.maintenanceRepo.ListByUser(userID, ordered)
		},
		func(m *models.MaintenanceRequest) time.Time { return m.CreatedAt },
	)
}

// Submit creates a new maintenance request. A resident with an active request
// is refused before any upload or write happens.
func (s *maintenanceService) Submit(ctx context.Context, userID uint, submission MaintenanceSubmission) (*models.MaintenanceRequest, error) {
	if !models.ValidMaintenanceType(submission.RequestType) {
		return nil, ErrInvalidMaintenanceType
	}

	active, err := s.maintenanceRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active maintenance requests: %w", err)
	}
	if active > 0 {
		return nil, ErrActiveRequestExists
	}

	request := &models.MaintenanceRequest{
		DocumentID:  uuid.New().String(),
		UserID:      userID,
		RequestType: submission.RequestType,
		Description: submission.Description,
		Status:      models.RequestStatusPending,
	}

	if submission.Image != nil {
		key := fmt.Sprintf("users/%d/maintenance/%s%s", userID, request.DocumentID, submission.Image.Ext())
		url, err := s.store.Upload(ctx, key, submission.Image.Content, submission.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload maintenance image: %w", err)
		}
		request.ImageURL = &url
	}

	if err := s.maintenanceRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	s.notifier.NotifyAdmins(
		models.NotificationTypeMaintenanceSubmitted,
		"New maintenance request",
		fmt.Sprintf("Resident #%d requested %s maintenance", userID, submission.RequestType),
		request.DocumentID,
	)
	s.hub.Publish(realtime.TopicMaintenance, userID)

	return request, nil
}

// Update edits an existing maintenance request. Only the owner may edit, and
// only while the request is still pending.
func (s *maintenanceService) Update(ctx context.Context, userID uint, requestID uint, submission MaintenanceSubmission) (*models.MaintenanceRequest, error) {
	if !models.ValidMaintenanceType(submission.RequestType) {
		return nil, ErrInvalidMaintenanceType
	}

	request, err := s.maintenanceRepo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load maintenance request: %w", err)
	}

	if request.UserID != userID {
		return nil, ErrNotFound
	}
	if !request.IsEditable() {
		return nil, ErrNotEditable
	}

	oldImageURL := request.ImageURL
	if submission.Image != nil {
		key := fmt.Sprintf("users/%d/maintenance/%s%s", userID, uuid.New().String(), submission.Image.Ext())
		url, err := s.store.Upload(ctx, key, submission.Image.Content, submission.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload maintenance image: %w", err)
		}
		request.ImageURL = &url
	}

	request.RequestType = submission.RequestType
	request.Description = submission.Description

	if err := s.maintenanceRepo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to update maintenance request: %w", err)
	}

	if submission.Image != nil && oldImageURL != nil {
		if err := s.store.DeleteByURL(ctx, *oldImageURL); err != nil {
			s.logger.WithError(err).WithField("request_id", request.ID).Warn("Failed to delete replaced maintenance image")
		}
	}

	s.hub.Publish(realtime.TopicMaintenance, userID)

	return request, nil
}
