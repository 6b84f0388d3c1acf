package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opaleka/config"
	"opaleka/database"
	bookingRepo "opaleka/database/repository/booking"
	notificationRepo "opaleka/database/repository/notification"
	providerRepo "opaleka/database/repository/provider"
	userRepo "opaleka/database/repository/user"
	"opaleka/handlers"
	"opaleka/middleware"
	"opaleka/routes"
	"opaleka/services/booking"
	"opaleka/services/mailer"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepo.NewMongoUserRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()
	providerDetails := providerRepo.NewMongoProviderDetailsRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Bookings:      bookings,
		Users:         users,
		Notifications: notifications,
		Providers:     providerDetails,
		Mailer:        mailer.NewSMTPMailer(),
		AssetBaseURL:  config.AppConfig.AssetBaseURL,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService)
	routes.RegisterRoutes(router, bookingHandler)

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
