package response

import (
	"warga-be-svc/internal/models"
)

// DashboardSummaryResponse aggregates the resident's home screen figures
type DashboardSummaryResponse struct {
	OutstandingBalance  int64                `json:"outstanding_balance"`
	UnpaidBillings      int64                `json:"unpaid_billings"`
	OverdueBillings     int64                `json:"overdue_billings"`
	ActiveComplaints    int64                `json:"active_complaints"`
	ActiveMaintenance   int64                `json:"active_maintenance"`
	RegisteredVehicles  int64                `json:"registered_vehicles"`
	UnreadNotifications int64                `json:"unread_notifications"`
	LatestAnnouncement  *models.Announcement `json:"latest_announcement,omitempty"`
}
