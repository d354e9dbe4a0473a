package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// HistoryHandler handles activity history HTTP requests
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewHistoryHandler creates a new HistoryHandler instance
func NewHistoryHandler(historyService service.HistoryService, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// List returns the caller's merged activity history, newest first
// @Summary List my activity history
// @Description Merged timeline of complaints, maintenance requests, payments and proof submissions
// @Tags history
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]response.HistoryItem} "History"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := h.historyService.List(user.ID, page, limit)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list history")
		return
	}

	utils.PaginatedSuccessResponse(c, "History retrieved successfully", items, page, limit, total)
}
