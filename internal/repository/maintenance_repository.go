package repository

import (
	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// MaintenanceRepository defines the interface for maintenance request data operations
type MaintenanceRepository interface {
	GetByID(id uint) (*models.MaintenanceRequest, error)
	ListByUser(userID uint, ordered bool) ([]*models.MaintenanceRequest, error)
	CountActiveByUser(userID uint) (int64, error)
	Create(request *models.MaintenanceRequest) error
	Update(request *models.MaintenanceRequest) error
}

// maintenanceRepository implements MaintenanceRepository
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{
		db: db,
	}
}

// GetByID retrieves a maintenance request by ID
func (r *maintenanceRepository) GetByID(id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest

	err := r.db.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// ListByUser retrieves the maintenance requests scoped to a user. When ordered
// is false the query runs without ORDER BY and the caller sorts the result.
func (r *maintenanceRepository) ListByUser(userID uint, ordered bool) ([]*models.MaintenanceRequest, error) {
	var requests []*models.MaintenanceRequest

	query := r.db.Where("user_id = ?", userID)
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

// CountActiveByUser counts the user's requests still in an active status
func (r *maintenanceRepository) CountActiveByUser(userID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.MaintenanceRequest{}).
		Where("user_id = ? AND status IN ?", userID, models.ActiveRequestStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Create inserts a new maintenance request
func (r *maintenanceRepository) Create(request *models.MaintenanceRequest) error {
	return r.db.Create(request).Error
}

// Update saves all fields of an existing maintenance request
func (r *maintenanceRepository) Update(request *models.MaintenanceRequest) error {
	return r.db.Save(request).Error
}
