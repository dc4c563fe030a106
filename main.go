package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivewell/config"
	"drivewell/database"
	bookingRepoPkg "drivewell/database/repository/booking"
	branchRepoPkg "drivewell/database/repository/branch"
	catalogRepoPkg "drivewell/database/repository/catalog"
	feedbackRepoPkg "drivewell/database/repository/feedback"
	userRepoPkg "drivewell/database/repository/user"
	vehicleRepoPkg "drivewell/database/repository/vehicle"
	"drivewell/handlers"
	"drivewell/middleware"
	"drivewell/routes"
	"drivewell/services/booking"
	"drivewell/services/catalog"
	"drivewell/services/feedback"
	"drivewell/services/notification"
	"drivewell/services/storage"
	"drivewell/services/user"
	"drivewell/services/vehicle"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitIntentCache()
	utils.StartHealthMonitor(utils.GetIntentCacheClient(), database.MongoClient)

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	eventRepo := bookingRepoPkg.NewMongoPaymentEventRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	branchRepo := branchRepoPkg.NewMongoBranchRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()

	// services.
	notifier := notification.NewDefaultNotificationService(notification.NewGomailMailer())

	userService := user.NewUserService(userRepo, branchRepo, storageService, notifier)
	vehicleService := vehicle.NewVehicleService(vehicleRepo)
	catalogService := catalog.NewCatalogService(branchRepo, catalogRepo, storageService)
	feedbackService := feedback.NewFeedbackService(feedbackRepo, branchRepo, catalogRepo)

	bookingService := booking.NewBookingService(
		bookingRepo,
		eventRepo,
		branchRepo,
		catalogRepo,
		vehicleRepo,
		userRepo,
		booking.NewRedisIntentStore(utils.GetIntentCacheClient()),
		booking.NewStripeCheckoutClient(),
		notifier,
	)

	handlers.Init(userService, vehicleService, catalogService, bookingService, feedbackService, storageService)
	handlers.InitStats(bookingRepo, userRepo, branchRepo, catalogRepo, vehicleRepo)

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
