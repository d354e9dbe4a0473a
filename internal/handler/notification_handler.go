package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	hub                 *realtime.Hub
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService service.NotificationService, hub *realtime.Hub, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		hub:                 hub,
		logger:              logger,
	}
}

// List returns the caller's notifications, newest first. Admins also see
// the admin-scoped feed.
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Notification} "Notifications"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notificationService.ListForUser(user.ID, user.IsAdmin())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list notifications")
		return
	}

	utils.SuccessResponse(c, "Notifications retrieved successfully", notifications)
}

// Watch streams notification snapshots for the caller over SSE
// @Summary Watch my notifications
// @Tags notifications
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of notification snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/notifications/watch [get]
func (h *NotificationHandler) Watch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	scope := user.ID
	if user.IsAdmin() {
		scope = realtime.BroadcastScope
	}

	snapshotStream(c, h.hub, h.logger, realtime.TopicNotifications, scope, func() (interface{}, error) {
		return h.notificationService.ListForUser(user.ID, user.IsAdmin())
	})
}

// MarkRead marks one notification as read
// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse "Notification marked as read"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", err)
		return
	}

	if err := h.notificationService.MarkRead(user.ID, notificationID, user.IsAdmin()); err != nil {
		respondServiceError(c, h.logger, err, "Failed to mark notification as read")
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}

// CountUnread returns the caller's unread notification count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=map[string]int64} "Unread count"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	user := middleware.CurrentUser(c)

	count, err := h.notificationService.CountUnread(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to count unread notifications")
		return
	}

	utils.SuccessResponse(c, "Unread count retrieved successfully", map[string]int64{"unread": count})
}
