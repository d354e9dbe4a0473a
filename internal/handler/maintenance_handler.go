package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// MaintenanceFormRequest represents the multipart maintenance request form fields
type MaintenanceFormRequest struct {
	RequestType string `form:"request_type" binding:"required,oneof=water electricity building"`
	Description string `form:"description" binding:"required,min=10"`
}

// MaintenanceHandler handles maintenance request HTTP requests
type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
	hub                *realtime.Hub
	logger             *logger.Logger
}

// NewMaintenanceHandler creates a new MaintenanceHandler instance
func NewMaintenanceHandler(maintenanceService service.MaintenanceService, hub *realtime.Hub, logger *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		hub:                hub,
		logger:             logger,
	}
}

// List returns the caller's maintenance requests, newest first
// @Summary List my maintenance requests
// @Tags maintenance
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.MaintenanceRequest} "Maintenance requests"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/maintenance-requests [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requests, err := h.maintenanceService.List(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list maintenance requests")
		return
	}

	utils.SuccessResponse(c, "Maintenance requests retrieved successfully", requests)
}

// Watch streams maintenance request snapshots for the caller over SSE
// @Summary Watch my maintenance requests
// @Tags maintenance
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of maintenance request snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/maintenance-requests/watch [get]
func (h *MaintenanceHandler) Watch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	snapshotStream(c, h.hub, h.logger, realtime.TopicMaintenance, user.ID, func() (interface{}, error) {
		return h.maintenanceService.List(user.ID)
	})
}

// Submit files a new maintenance request, optionally with a photo
// @Summary Submit a maintenance request
// @Description File a new maintenance request. Rejected while another request is still active.
// @Tags maintenance
// @Accept multipart/form-data
// @Produce json
// @Param request_type formData string true "Request type" Enums(water, electricity, building)
// @Param description formData string true "Problem description"
// @Param image formData file false "Optional photo"
// @Success 201 {object} utils.APIResponse{data=models.MaintenanceRequest} "Created request"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 409 {object} utils.APIResponse "Active request exists"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/maintenance-requests [post]
func (h *MaintenanceHandler) Submit(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req MaintenanceFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Request type and description are required", err)
		return
	}

	image, err := readUploadedFile(c, "image", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image upload", err)
		return
	}

	request, err := h.maintenanceService.Submit(c.Request.Context(), user.ID, service.MaintenanceSubmission{
		RequestType: req.RequestType,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to submit maintenance request")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":      user.ID,
		"request_id":   request.ID,
		"request_type": request.RequestType,
	}).Info("Maintenance request submitted")

	utils.CreatedResponse(c, "Maintenance request submitted successfully", request)
}

// Update edits a pending maintenance request
// @Summary Update a maintenance request
// @Description Edit type, description or photo of an own pending request
// @Tags maintenance
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Request ID"
// @Param request_type formData string true "Request type" Enums(water, electricity, building)
// @Param description formData string true "Problem description"
// @Param image formData file false "Replacement photo"
// @Success 200 {object} utils.APIResponse{data=models.MaintenanceRequest} "Updated request"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Request not found"
// @Failure 409 {object} utils.APIResponse "Request no longer editable"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/maintenance-requests/{id} [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", err)
		return
	}

	var req MaintenanceFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Request type and description are required", err)
		return
	}

	image, err := readUploadedFile(c, "image", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image upload", err)
		return
	}

	request, err := h.maintenanceService.Update(c.Request.Context(), user.ID, requestID, service.MaintenanceSubmission{
		RequestType: req.RequestType,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update maintenance request")
		return
	}

	utils.SuccessResponse(c, "Maintenance request updated successfully", request)
}
