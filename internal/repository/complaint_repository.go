package repository

import (
	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// ComplaintRepository defines the interface for complaint data operations
type ComplaintRepository interface {
	GetByID(id uint) (*models.Complaint, error)
	ListByUser(userID uint, ordered bool) ([]*models.Complaint, error)
	CountActiveByUser(userID uint) (int64, error)
	Create(complaint *models.Complaint) error
	Update(complaint *models.Complaint) error
}

// complaintRepository implements ComplaintRepository
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new instance of ComplaintRepository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{
		db: db,
	}
}

// GetByID retrieves a complaint by ID
func (r *complaintRepository) GetByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint

	err := r.db.Where("id = ?", id).First(&complaint).Error
	if err != nil {
		return nil, err
	}

	return &complaint, nil
}

// ListByUser retrieves the complaints scoped to a user. When ordered is false
// the query runs without ORDER BY and the caller sorts the result itself.
func (r *complaintRepository) ListByUser(userID uint, ordered bool) ([]*models.Complaint, error) {
	var complaints []*models.Complaint

	query := r.db.Where("user_id = ?", userID)
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&complaints).Error; err != nil {
		return nil, err
	}

	return complaints, nil
}

// CountActiveByUser counts the user's complaints still in an active status
func (r *complaintRepository) CountActiveByUser(userID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Complaint{}).
		Where("user_id = ? AND status IN ?", userID, models.ActiveRequestStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Create inserts a new complaint
func (r *complaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// Update saves all fields of an existing complaint
func (r *complaintRepository) Update(complaint *models.Complaint) error {
	return r.db.Save(complaint).Error
}
