package routes

import (
	"net/http"
	"time"

	"opaleka/handlers"
	"opaleka/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		// Creation carries both party IDs in the body, as submitted by the
		// client app.
		api.POST("/book-service", bh.BookServiceHandler)

		// Provider-facing routes.
		provider := api.Group("")
		provider.Use(middleware.JWTAuthProviderMiddleware())
		provider.GET("/provider/bookings/:status", bh.ProviderBookingsHandler)
		provider.POST("/accept/:bookingId", bh.AcceptBookingHandler)
		provider.POST("/reject/:bookingId", bh.RejectBookingHandler)
		provider.POST("/complete/:bookingId", bh.CompleteJobHandler)
		provider.DELETE("/rejected/:bookingId", bh.DeleteRejectedHandler)
		provider.DELETE("/completed/:bookingId", bh.DeleteCompletedHandler)

		// Client-facing routes.
		client := api.Group("")
		client.Use(middleware.JWTAuthUserMiddleware())
		client.GET("/history/:view", bh.ClientHistoryHandler)
		client.DELETE("/pending/:bookingId", bh.DeletePendingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Opaleka"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
}
