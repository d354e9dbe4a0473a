package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSummary returns the caller's home-screen summary
// @Summary Get resident dashboard summary
// @Description Outstanding balance, open request counts and the latest announcement in one call
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.DashboardSummaryResponse} "Dashboard summary"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	user := middleware.CurrentUser(c)

	summary, err := h.dashboardService.GetResidentSummary(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to load dashboard summary")
		return
	}

	utils.SuccessResponse(c, "Dashboard summary retrieved successfully", summary)
}
