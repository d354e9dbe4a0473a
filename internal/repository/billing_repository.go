package repository

import (
	"time"

	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// BillingRepository defines the interface for billing data operations
type BillingRepository interface {
	GetByID(id uint) (*models.Billing, error)
	ListByUser(userID uint, ordered bool) ([]*models.Billing, error)
	ListUnsettled() ([]*models.Billing, error)
	UpdateProof(id uint, proofURL, proofNote string, uploadedAt time.Time) error
	AddPayment(payment *models.Payment) error
	UpdateStatus(id uint, status string) error
}

// billingRepository implements BillingRepository
type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new instance of BillingRepository
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{
		db: db,
	}
}

// GetByID retrieves a billing record with its payments by ID
func (r *billingRepository) GetByID(id uint) (*models.Billing, error) {
	var billing models.Billing

	err := r.db.Preload("Payments").Where("id = ?", id).First(&billing).Error
	if err != nil {
		return nil, err
	}

	return &billing, nil
}

// ListByUser retrieves the billings scoped to a user. When ordered is false the
// query runs without ORDER BY and the caller sorts the result itself.
func (r *billingRepository) ListByUser(userID uint, ordered bool) ([]*models.Billing, error) {
	var billings []*models.Billing

	query := r.db.Preload("Payments").Where("user_id = ?", userID)
	if ordered {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&billings).Error; err != nil {
		return nil, err
	}

	return billings, nil
}

// ListUnsettled retrieves every billing that has not been marked paid, across
// all users, for the reminder scheduler.
func (r *billingRepository) ListUnsettled() ([]*models.Billing, error) {
	var billings []*models.Billing

	err := r.db.Preload("Payments").Where("status <> ?", models.BillingStatusPaid).Find(&billings).Error
	if err != nil {
		return nil, err
	}

	return billings, nil
}

// UpdateProof applies the payment-proof fields as a partial field merge and
// moves the billing to waiting_verification.
func (r *billingRepository) UpdateProof(id uint, proofURL, proofNote string, uploadedAt time.Time) error {
	return r.db.Model(&models.Billing{}).Where("id = ?", id).Updates(map[string]interface{}{
		"proof_url":         proofURL,
		"proof_note":        proofNote,
		"proof_uploaded_at": uploadedAt,
		"status":            models.BillingStatusWaitingVerification,
	}).Error
}

// AddPayment records a settled amount against a billing
func (r *billingRepository) AddPayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// UpdateStatus sets the billing status
func (r *billingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Billing{}).Where("id = ?", id).Update("status", status).Error
}
