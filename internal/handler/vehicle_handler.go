package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// VehicleFormRequest represents the multipart vehicle registration form fields
type VehicleFormRequest struct {
	PlateNumber string `form:"plate_number" binding:"required,plate"`
	Make        string `form:"make" binding:"required"`
	Model       string `form:"model" binding:"required"`
	Color       string `form:"color" binding:"required"`
	Year        int    `form:"year" binding:"required,min=1950,max=2100"`
	VehicleType string `form:"vehicle_type" binding:"required,oneof=car motorcycle"`
}

// VehicleHandler handles vehicle registration HTTP requests
type VehicleHandler struct {
	vehicleService service.VehicleService
	hub            *realtime.Hub
	logger         *logger.Logger
}

// NewVehicleHandler creates a new VehicleHandler instance
func NewVehicleHandler(vehicleService service.VehicleService, hub *realtime.Hub, logger *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		hub:            hub,
		logger:         logger,
	}
}

// List returns the caller's registered vehicles, newest first
// @Summary List my vehicles
// @Tags vehicles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Vehicle} "Vehicles"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	vehicles, err := h.vehicleService.List(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list vehicles")
		return
	}

	utils.SuccessResponse(c, "Vehicles retrieved successfully", vehicles)
}

// Watch streams vehicle snapshots for the caller over SSE
// @Summary Watch my vehicles
// @Tags vehicles
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of vehicle snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/vehicles/watch [get]
func (h *VehicleHandler) Watch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	snapshotStream(c, h.hub, h.logger, realtime.TopicVehicles, user.ID, func() (interface{}, error) {
		return h.vehicleService.List(user.ID)
	})
}

// Register submits a new vehicle registration with its documents
// @Summary Register a vehicle
// @Description Register a vehicle with its photo and registration card for admin approval
// @Tags vehicles
// @Accept multipart/form-data
// @Produce json
// @Param plate_number formData string true "Plate number, e.g. B 1234 ABC"
// @Param make formData string true "Manufacturer"
// @Param model formData string true "Model"
// @Param color formData string true "Color"
// @Param year formData int true "Production year"
// @Param vehicle_type formData string true "Vehicle type" Enums(car, motorcycle)
// @Param photo formData file false "Vehicle photo"
// @Param registration_card formData file false "Registration card scan"
// @Success 201 {object} utils.APIResponse{data=models.Vehicle} "Registered vehicle"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/vehicles [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req VehicleFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle details", err)
		return
	}

	photo, err := readUploadedFile(c, "photo", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle photo", err)
		return
	}
	registrationCard, err := readUploadedFile(c, "registration_card", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration card upload", err)
		return
	}

	vehicle, err := h.vehicleService.Register(c.Request.Context(), user.ID, service.VehicleSubmission{
		PlateNumber:      req.PlateNumber,
		Make:             req.Make,
		Model:            req.Model,
		Color:            req.Color,
		Year:             req.Year,
		VehicleType:      req.VehicleType,
		Photo:            photo,
		RegistrationCard: registrationCard,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to register vehicle")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"vehicle_id": vehicle.ID,
		"plate":      vehicle.PlateNumber,
	}).Info("Vehicle registered")

	utils.CreatedResponse(c, "Vehicle registered successfully", vehicle)
}

// Update edits a pending vehicle registration
// @Summary Update a vehicle registration
// @Description Edit details or documents of an own pending vehicle registration
// @Tags vehicles
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param plate_number formData string true "Plate number"
// @Param make formData string true "Manufacturer"
// @Param model formData string true "Model"
// @Param color formData string true "Color"
// @Param year formData int true "Production year"
// @Param vehicle_type formData string true "Vehicle type" Enums(car, motorcycle)
// @Param photo formData file false "Replacement photo"
// @Param registration_card formData file false "Replacement registration card"
// @Success 200 {object} utils.APIResponse{data=models.Vehicle} "Updated vehicle"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Vehicle not found"
// @Failure 409 {object} utils.APIResponse "Registration no longer editable"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID", err)
		return
	}

	var req VehicleFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle details", err)
		return
	}

	photo, err := readUploadedFile(c, "photo", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle photo", err)
		return
	}
	registrationCard, err := readUploadedFile(c, "registration_card", false)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration card upload", err)
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), user.ID, vehicleID, service.VehicleSubmission{
		PlateNumber:      req.PlateNumber,
		Make:             req.Make,
		Model:            req.Model,
		Color:            req.Color,
		Year:             req.Year,
		VehicleType:      req.VehicleType,
		Photo:            photo,
		RegistrationCard: registrationCard,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update vehicle")
		return
	}

	utils.SuccessResponse(c, "Vehicle updated successfully", vehicle)
}

// Delete removes a vehicle registration and its stored documents
// @Summary Delete a vehicle registration
// @Description Remove an own vehicle registration. Stored images are deleted best-effort afterwards.
// @Tags vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} utils.APIResponse "Vehicle deleted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Vehicle not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), user.ID, vehicleID); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete vehicle")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"vehicle_id": vehicleID,
	}).Info("Vehicle deleted")

	utils.SuccessResponse(c, "Vehicle deleted successfully", nil)
}
