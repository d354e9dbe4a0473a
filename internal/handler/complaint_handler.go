package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// ComplaintFormRequest represents the multipart complaint form fields
type ComplaintFormRequest struct {
	Subject     string `form:"subject" binding:"required,min=3,max=200"`
	Description string `form:"description" binding:"required,min=10"`
}

// ComplaintHandler handles complaint HTTP requests
type ComplaintHandler struct {
	complaintService service.ComplaintService
	hub              *realtime.Hub
	logger           *logger.Logger
}

// NewComplaintHandler creates a new ComplaintHandler instance
func NewComplaintHandler(complaintService service.ComplaintService, hub *realtime.Hub, logger *logger.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		hub:              hub,
		logger:           logger,
	}
}

// List returns the caller's complaints, newest first
// @Summary List my complaints
// @Tags complaints
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Complaint} "Complaints"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	complaints, err := h.complaintService.List(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list complaints")
		return
	}

	utils.SuccessResponse(c, "Complaints retrieved successfully", complaints)
}

// Watch streams complaint snapshots for the caller over SSE
// @Summary Watch my complaints
// @Tags complaints
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of complaint snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/complaints/watch [get]
func (h *ComplaintHandler) Watch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	snapshotStream(c, h.hub, h.logger, realtime.TopicComplaints, user.ID, func() (interface{}, error) {
		return h.complaintService.List(user.ID)
	})
}

// Submit files a new complaint, optionally with a photo
// @Summary Submit a complaint
// @Description File a new complaint. Rejected while another complaint is still active.
// @Tags complaints
// @Accept multipart/form-data
// @Produce json
// @Param subject formData string true "Short subject"
// @Param description formData string true "Detailed description"
// @Param image formData file false "Optional photo"
// @Success 201 {object} utils.APIResponse{data=models.Complaint} "Created complaint"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 409 {object} utils.APIResponse "Active complaint exists"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ComplaintFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Subject and description are required", err)
		return
	}

	image, err := readUploadedFile(c, "image", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image upload", err)
		return
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), user.ID, service.ComplaintSubmission{
		Subject:     req.Subject,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to submit complaint")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":      user.ID,
		"complaint_id": complaint.ID,
	}).Info("Complaint submitted")

	utils.CreatedResponse(c, "Complaint submitted successfully", complaint)
}

// Update edits a pending complaint
// @Summary Update a complaint
// @Description Edit subject, description or photo of an own pending complaint
// @Tags complaints
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Complaint ID"
// @Param subject formData string true "Short subject"
// @Param description formData string true "Detailed description"
// @Param image formData file false "Replacement photo"
// @Success 200 {object} utils.APIResponse{data=models.Complaint} "Updated complaint"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint no longer editable"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id} [put]
func (h *ComplaintHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid complaint ID", err)
		return
	}

	var req ComplaintFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Subject and description are required", err)
		return
	}

	image, err := readUploadedFile(c, "image", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image upload", err)
		return
	}

	complaint, err := h.complaintService.Update(c.Request.Context(), user.ID, complaintID, service.ComplaintSubmission{
		Subject:     req.Subject,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update complaint")
		return
	}

	utils.SuccessResponse(c, "Complaint updated successfully", complaint)
}
