package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// AnnouncementHandler handles announcement HTTP requests
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	hub                 *realtime.Hub
	logger              *logger.Logger
}

// NewAnnouncementHandler creates a new AnnouncementHandler instance
func NewAnnouncementHandler(announcementService service.AnnouncementService, hub *realtime.Hub, logger *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		hub:                 hub,
		logger:              logger,
	}
}

// List returns all active announcements, newest first
// @Summary List active announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Announcement} "Announcements"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcementService.ListActive()
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list announcements")
		return
	}

	utils.SuccessResponse(c, "Announcements retrieved successfully", announcements)
}

// Watch streams announcement snapshots over SSE. Announcements are
// community-wide, so every subscriber shares the broadcast scope.
// @Summary Watch announcements
// @Tags announcements
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of announcement snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/announcements/watch [get]
func (h *AnnouncementHandler) Watch(c *gin.Context) {
	snapshotStream(c, h.hub, h.logger, realtime.TopicAnnouncements, realtime.BroadcastScope, func() (interface{}, error) {
		return h.announcementService.ListActive()
	})
}
