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

// ComplaintSubmission carries the validated form state of a complaint
type ComplaintSubmission struct {
	Subject     string
	Description string
	Image       *UploadedFile
}

// ComplaintService defines the interface for complaint business operations
type ComplaintService interface {
	List(userID uint) ([]*models.Complaint, error)
	Submit(ctx context.Context, userID uint, submission ComplaintSubmission) (*models.Complaint, error)
	Update(ctx context.Context, userID uint, complaintID uint, submission ComplaintSubmission) (*models.Complaint, error)
}

// complaintService implements ComplaintService
type complaintService struct {
	complaintRepo repository.ComplaintRepository
	store         storage.ObjectStorage
	notifier      NotificationService
	hub           *realtime.Hub
	logger        *logger.Logger
}

// NewComplaintService creates a new instance of ComplaintService
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	store storage.ObjectStorage,
	notifier NotificationService,
	hub *realtime.Hub,
	logger *logger.Logger,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		store:         store,
		notifier:      notifier,
		hub:           hub,
		logger:        logger,
	}
}

// List retrieves the resident's complaints, newest first
func (s *complaintService) List(userID uint) ([]*models.Complaint, error) {
	return listWithOrderFallback(s.logger, "complaints",
		func(ordered bool) ([]*models.Complaint, error) {
			return s.complaintRepo.ListByUser(userID, ordered)
		},
		func(c *models.Complaint) time.Time { return c.CreatedAt },
	)
}

// Submit creates a new complaint. A resident with an active complaint is
// refused before any upload or write happens. The admin notification after
// the write is best-effort and never fails the submission.
func (s *complaintService) Submit(ctx context.Context, userID uint, submission ComplaintSubmission) (*models.Complaint, error) {
	active, err := s.complaintRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active complaints: %w", err)
	}
	if active > 0 {
		return nil, ErrActiveRequestExists
	}

	complaint := &models.Complaint{
		DocumentID:  uuid.New().String(),
		UserID:      userID,
		Subject:     submission.Subject,
		Description: submission.Description,
		Status:      models.RequestStatusPending,
	}

	if submission.Image != nil {
		key := fmt.Sprintf("users/%d/complaints/%s%s", userID, complaint.DocumentID, submission.Image.Ext())
		url, err := s.store.Upload(ctx, key, submission.Image.Content, submission.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload complaint image: %w", err)
		}
		complaint.ImageURL = &url
	}

	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.notifier.NotifyAdmins(
		models.NotificationTypeComplaintSubmitted,
		"New complaint submitted",
		fmt.Sprintf("Resident #%d submitted a complaint: %s", userID, submission.Subject),
		complaint.DocumentID,
	)
	s.hub.Publish(realtime.TopicComplaints, userID)

	return complaint, nil
}

// Update edits an existing complaint. Only the owner may edit, and only while
// the complaint is still pending. A replaced image is deleted from storage
// best-effort.
func (s *complaintService) Update(ctx context.Context, userID uint, complaintID uint, submission ComplaintSubmission) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	if complaint.UserID != userID {
		return nil, ErrNotFound
	}
	if !complaint.IsEditable() {
		return nil, ErrNotEditable
	}

	oldImageURL := complaint.ImageURL
	if submission.Image != nil {
		key := fmt.Sprintf("users/%d/complaints/%s%s", userID, uuid.New().String(), submission.Image.Ext())
		url, err := s.store.Upload(ctx, key, submission.Image.Content, submission.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload complaint image: %w", err)
		}
		complaint.ImageURL = &url
	}

	complaint.Subject = submission.Subject
	complaint.Description = submission.Description

	if err := s.complaintRepo.Update(complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}

	if submission.Image != nil && oldImageURL != nil {
		if err := s.store.DeleteByURL(ctx, *oldImageURL); err != nil {
			s.logger.WithError(err).WithField("complaint_id", complaint.ID).Warn("Failed to delete replaced complaint image")
		}
	}

	s.hub.Publish(realtime.TopicComplaints, userID)

	return complaint, nil
}
