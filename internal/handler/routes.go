package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
)

// Services bundles everything the router needs
type Services struct {
	Auth         service.AuthService
	Billing      service.BillingService
	Complaint    service.ComplaintService
	Maintenance  service.MaintenanceService
	Vehicle      service.VehicleService
	Notification service.NotificationService
	Announcement service.AnnouncementService
	History      service.HistoryService
	Dashboard    service.DashboardService
}

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, services Services, hub *realtime.Hub, logger *logger.Logger) {
	// Initialize handlers
	authHandler := NewAuthHandler(services.Auth, logger)
	billingHandler := NewBillingHandler(services.Billing, hub, logger)
	complaintHandler := NewComplaintHandler(services.Complaint, hub, logger)
	maintenanceHandler := NewMaintenanceHandler(services.Maintenance, hub, logger)
	vehicleHandler := NewVehicleHandler(services.Vehicle, hub, logger)
	notificationHandler := NewNotificationHandler(services.Notification, hub, logger)
	announcementHandler := NewAnnouncementHandler(services.Announcement, hub, logger)
	historyHandler := NewHistoryHandler(services.History, logger)
	dashboardHandler := NewDashboardHandler(services.Dashboard, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Public routes
		v1.POST("/auth/login", authHandler.Login)
		// Payment gateway webhook, authenticated by the gateway's signature
		v1.POST("/billings/confirm-payment", billingHandler.ConfirmPayment)

		// Authenticated routes
		authed := v1.Group("")
		authed.Use(middleware.Auth(services.Auth, logger))
		{
			auth := authed.Group("/auth")
			{
				auth.POST("/logout", authHandler.Logout)
				auth.GET("/session", authHandler.GetSession)
			}

			billings := authed.Group("/billings")
			{
				billings.GET("", billingHandler.List)
				billings.GET("/watch", billingHandler.Watch)
				billings.GET("/export", billingHandler.ExportStatement)
				billings.POST("/:id/proof", billingHandler.SubmitProof)
				billings.POST("/:id/payment-link", billingHandler.CreatePaymentLink)
			}

			complaints := authed.Group("/complaints")
			{
				complaints.GET("", complaintHandler.List)
				complaints.GET("/watch", complaintHandler.Watch)
				complaints.POST("", complaintHandler.Submit)
				complaints.PUT("/:id", complaintHandler.Update)
			}

			maintenance := authed.Group("/maintenance-requests")
			{
				maintenance.GET("", maintenanceHandler.List)
				maintenance.GET("/watch", maintenanceHandler.Watch)
				maintenance.POST("", maintenanceHandler.Submit)
				maintenance.PUT("/:id", maintenanceHandler.Update)
			}

			vehicles := authed.Group("/vehicles")
			{
				vehicles.GET("", vehicleHandler.List)
				vehicles.GET("/watch", vehicleHandler.Watch)
				vehicles.POST("", vehicleHandler.Register)
				vehicles.PUT("/:id", vehicleHandler.Update)
				vehicles.DELETE("/:id", vehicleHandler.Delete)
			}

			notifications := authed.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.GET("/watch", notificationHandler.Watch)
				notifications.GET("/unread-count", notificationHandler.CountUnread)
				notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			}

			announcements := authed.Group("/announcements")
			{
				announcements.GET("", announcementHandler.List)
				announcements.GET("/watch", announcementHandler.Watch)
			}

			authed.GET("/history", historyHandler.List)
			authed.GET("/dashboard/summary", dashboardHandler.GetSummary)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Warga Backend Service",
	})
}
