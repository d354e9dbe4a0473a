package repository

import (
	"time"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"

	"gorm.io/gorm"
)

// DashboardRepository defines the interface for dashboard aggregate queries
type DashboardRepository interface {
	GetResidentSummary(userID uint, now time.Time) (*response.DashboardSummaryResponse, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetResidentSummary aggregates the resident's billing, request and
// notification figures in a single round of queries. The vehicle count comes
// from the vehicle repository at the service layer.
func (r *dashboardRepository) GetResidentSummary(userID uint, now time.Time) (*response.DashboardSummaryResponse, error) {
	var summary response.DashboardSummaryResponse

	billingQuery := `
		SELECT
			COALESCE(SUM(b.amount - COALESCE(p.paid, 0)), 0) AS outstanding_balance,
			COUNT(*) AS unpaid_billings,
			COUNT(*) FILTER (WHERE b.due_date < ?) AS overdue_billings
		FROM billings b
		LEFT JOIN (
			SELECT billing_id, SUM(amount) AS paid
			FROM payments
			GROUP BY billing_id
		) p ON p.billing_id = b.id
		WHERE b.user_id = ?
		AND b.status <> ?
	`

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	row := r.db.Raw(billingQuery, today, userID, models.BillingStatusPaid).Row()
	if err := row.Scan(&summary.OutstandingBalance, &summary.UnpaidBillings, &summary.OverdueBillings); err != nil {
		return nil, err
	}

	err := r.db.Model(&models.Complaint{}).
		Where("user_id = ? AND status IN ?", userID, models.ActiveRequestStatuses).
		Count(&summary.ActiveComplaints).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.MaintenanceRequest{}).
		Where("user_id = ? AND status IN ?", userID, models.ActiveRequestStatuses).
		Count(&summary.ActiveMaintenance).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Notification{}).
		Where("recipient_scope = ? AND recipient_user_id = ? AND read = ?", models.NotificationScopeUser, userID, false).
		Count(&summary.UnreadNotifications).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
