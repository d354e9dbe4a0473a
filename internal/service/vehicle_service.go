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

// VehicleSubmission carries the validated form state of a vehicle registration
type VehicleSubmission struct {
	PlateNumber      string
	Make             string
	Model            string
	Color            string
	Year             int
	VehicleType      string
	Photo            *UploadedFile
	RegistrationCard *UploadedFile
}

// VehicleService defines the interface for vehicle registration business operations
type VehicleService interface {
	List(userID uint) ([]*models.Vehicle, error)
	Register(ctx context.Context, userID uint, submission VehicleSubmission) (*models.Vehicle, error)
	Update(ctx context.Context, userID uint, vehicleID uint, submission VehicleSubmission) (*models.Vehicle, error)
	Delete(ctx context.Context, userID uint, vehicleID uint) error
}

// vehicleService implements VehicleService
type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	store       storage.ObjectStorage
	notifier    NotificationService
	hub         *realtime.Hub
	logger      *logger.Logger
}

// NewVehicleService creates a new instance of VehicleService
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	store storage.ObjectStorage,
	notifier NotificationService,
	hub *realtime.Hub,
	logger *logger.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		store:       store,
		notifier:    notifier,
		hub:         hub,
		logger:      logger,
	}
}

// List retrieves the resident's vehicle registrations, newest first
func (s *vehicleService) List(userID uint) ([]*models.Vehicle, error) {
	return listWithOrderFallback(s.logger, "vehicles",
		func(ordered bool) ([]*models.Vehicle, error) {
			return s.vehicleRepo.ListByUser(userID, ordered)
		},
		func(v *models.Vehicle) time.Time { return v.CreatedAt },
	)
}

// Register creates a new vehicle registration with its two images
func (s *vehicleService) Register(ctx context.Context, userID uint, submission VehicleSubmission) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{
		DocumentID:  uuid.New().String(),
		UserID:      userID,
		PlateNumber: submission.PlateNumber,
		Make:        submission.Make,
		Model:       submission.Model,
		Color:       submission.Color,
		Year:        submission.Year,
		VehicleType: submission.VehicleType,
		Status:      models.RequestStatusPending,
	}

	if submission.Photo != nil {
		url, err := s.uploadVehicleImage(ctx, userID, vehicle.DocumentID, "photo", submission.Photo)
		if err != nil {
			return nil, err
		}
		vehicle.PhotoURL = &url
	}
	if submission.RegistrationCard != nil {
		url, err := s.uploadVehicleImage(ctx, userID, vehicle.DocumentID, "registration", submission.RegistrationCard)
		if err != nil {
			return nil, err
		}
		vehicle.RegistrationCardURL = &url
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle registration: %w", err)
	}

	s.notifier.NotifyAdmins(
		models.NotificationTypeVehicleSubmitted,
		"New vehicle registration",
		fmt.Sprintf("Resident #%d registered vehicle %s", userID, submission.PlateNumber),
		vehicle.DocumentID,
	)
	s.hub.Publish(realtime.TopicVehicles, userID)

	return vehicle, nil
}

// Update edits a registration that is still pending review
func (s *vehicleService) Update(ctx context.Context, userID uint, vehicleID uint, submission VehicleSubmission) (*models.Vehicle, error) {
	vehicle, err := s.getOwnedVehicle(userID, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsEditable() {
		return nil, ErrNotEditable
	}

	var replaced []string

	if submission.Photo != nil {
		url, err := s.uploadVehicleImage(ctx, userID, vehicle.DocumentID, "photo", submission.Photo)
		if err != nil {
			return nil, err
		}
		if vehicle.PhotoURL != nil {
			replaced = append(replaced, *vehicle.PhotoURL)
		}
		vehicle.PhotoURL = &url
	}
	if submission.RegistrationCard != nil {
		url, err := s.uploadVehicleImage(ctx, userID, vehicle.DocumentID, "registration", submission.RegistrationCard)
		if err != nil {
			return nil, err
		}
		if vehicle.RegistrationCardURL != nil {
			replaced = append(replaced, *vehicle.RegistrationCardURL)
		}
		vehicle.RegistrationCardURL = &url
	}

	vehicle.PlateNumber = submission.PlateNumber
	vehicle.Make = submission.Make
	vehicle.Model = submission.Model
	vehicle.Color = submission.Color
	vehicle.Year = submission.Year
	vehicle.VehicleType = submission.VehicleType

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle registration: %w", err)
	}

	s.deleteImages(ctx, vehicle.ID, replaced)
	s.hub.Publish(realtime.TopicVehicles, userID)

	return vehicle, nil
}

// Delete removes a registration and then its two stored images. The image
// deletions are best-effort: a storage failure is logged and swallowed, the
// registration stays deleted.
func (s *vehicleService) Delete(ctx context.Context, userID uint, vehicleID uint) error {
	vehicle, err := s.getOwnedVehicle(userID, vehicleID)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(vehicle.ID); err != nil {
		return fmt.Errorf("failed to delete vehicle registration: %w", err)
	}

	var urls []string
	if vehicle.PhotoURL != nil {
		urls = append(urls, *vehicle.PhotoURL)
	}
	if vehicle.RegistrationCardURL != nil {
		urls = append(urls, *vehicle.RegistrationCardURL)
	}
	s.deleteImages(ctx, vehicle.ID, urls)

	s.hub.Publish(realtime.TopicVehicles, userID)

	return nil
}

// uploadVehicleImage stores one vehicle image under the user's namespace
func (s *vehicleService) uploadVehicleImage(ctx context.Context, userID uint, documentID, slot string, image *UploadedFile) (string, error) {
	key := fmt.Sprintf("users/%d/vehicles/%s/%s-%s%s", userID, documentID, slot, uuid.New().String()[:8], image.Ext())
	url, err := s.store.Upload(ctx, key, image.Content, image.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload vehicle %s image: %w", slot, err)
	}
	return url, nil
}

// deleteImages removes stored objects best-effort
func (s *vehicleService) deleteImages(ctx context.Context, vehicleID uint, urls []string) {
	for _, url := range urls {
		if err := s.store.DeleteByURL(ctx, url); err != nil {
			s.logger.WithError(err).WithField("vehicle_id", vehicleID).Warn("Failed to delete vehicle image")
		}
	}
}

// getOwnedVehicle loads a vehicle and hides other residents' vehicles behind
// a not-found error.
func (s *vehicleService) getOwnedVehicle(userID uint, vehicleID uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	if vehicle.UserID != userID {
		return nil, ErrNotFound
	}

	return vehicle, nil
}
