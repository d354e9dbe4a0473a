package repository

import (
	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// VehicleRepository defines the interface for vehicle registration data operations
type VehicleRepository interface {
	GetByID(id uint) (*models.Vehicle, error)
	ListByUser(userID uint, ordered bool) ([]*models.Vehicle, error)
	Create(vehicle *models.Vehicle) error
	Update(vehicle *models.Vehicle) error
	Delete(id uint) error
	CountByUser(userID uint) (int64, error)
}

// vehicleRepository implements VehicleRepository
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new instance of VehicleRepository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{
		db: db,
	}
}

// GetByID retrieves a vehicle registration by ID
func (r *vehicleRepository) GetByID(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	err := r.db.Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// ListByUser retrieves the vehicle registrations scoped to a user. When
// ordered is false the query runs without ORDER BY and the caller sorts.
func (r *vehicleRepository) ListByUser(userID uint, ordered bool) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle

	query := r.db.Where("user_id = ?", userID)
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&vehicles).Error; err != nil {
		return nil, err
	}

	return vehicles, nil
}

// Create inserts a new vehicle registration
func (r *vehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

// Update saves all fields of an existing vehicle registration
func (r *vehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

// Delete removes a vehicle registration
func (r *vehicleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vehicle{}, id).Error
}

// CountByUser counts the user's registered vehicles
func (r *vehicleRepository) CountByUser(userID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Vehicle{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
