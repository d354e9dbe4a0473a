package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"warga-be-svc/docs"
	"warga-be-svc/internal/config"
	"warga-be-svc/internal/database"
	"warga-be-svc/internal/handler"
	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/repository"
	"warga-be-svc/internal/scheduler"
	"warga-be-svc/internal/service"
	"warga-be-svc/internal/storage"
	"warga-be-svc/pkg/logger"
)

// @title Warga Backend Service API
// @version 1.0
// @description RESTful API for resident community services: billings, complaints, maintenance, vehicles and announcements
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Warga Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for resident community services"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Warga Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Register custom binding validators
	if err := handler.RegisterValidators(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to register validators")
	}

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize object storage
	store, err := storage.NewOSSStorage(&cfg.OSS, appLogger)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to initialize object storage")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	blacklistRepo := repository.NewTokenBlacklistRepository(db.DB)
	billingRepo := repository.NewBillingRepository(db.DB)
	complaintRepo := repository.NewComplaintRepository(db.DB)
	maintenanceRepo := repository.NewMaintenanceRepository(db.DB)
	vehicleRepo := repository.NewVehicleRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	announcementRepo := repository.NewAnnouncementRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize the live-collection hub
	hub := realtime.NewHub()

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, hub, cfg.Webhook, appLogger)
	gateway := service.NewMidtransGateway(cfg.Midtrans, appLogger)
	authService := service.NewAuthService(userRepo, blacklistRepo, cfg.JWT, appLogger)
	billingService := service.NewBillingService(billingRepo, userRepo, store, gateway, notificationService, hub, cfg.Scheduler.DueSoonDays, appLogger)
	complaintService := service.NewComplaintService(complaintRepo, store, notificationService, hub, appLogger)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, store, notificationService, hub, appLogger)
	vehicleService := service.NewVehicleService(vehicleRepo, store, notificationService, hub, appLogger)
	announcementService := service.NewAnnouncementService(announcementRepo, appLogger)
	historyService := service.NewHistoryService(billingRepo, complaintRepo, maintenanceRepo, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, vehicleRepo, announcementRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, handler.Services{
		Auth:         authService,
		Billing:      billingService,
		Complaint:    complaintService,
		Maintenance:  maintenanceService,
		Vehicle:      vehicleService,
		Notification: notificationService,
		Announcement: announcementService,
		History:      historyService,
		Dashboard:    dashboardService,
	}, hub, appLogger)

	// Start the due reminder scheduler
	reminderScheduler := scheduler.NewReminderScheduler(billingService, authService, schedulerLogRepo, appLogger, cfg.Scheduler.ReminderCronExpression)
	if err := reminderScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start reminder scheduler")
	}
	defer reminderScheduler.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
