package routes

import (
	"time"

	"drivewell/handlers"
	"drivewell/middleware"
	"drivewell/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/refresh", handlers.Refresh)
		api.POST("/logout", handlers.Logout)
		api.POST("/forgot-password", handlers.ForgotPassword)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", handlers.GetProfile)
		api.PUT("/me", handlers.UpdateProfile)
		api.PUT("/me/password", handlers.ChangePassword)
	}
}

// RegisterVehicleRoutes registers the customer garage endpoints.
func RegisterVehicleRoutes(r *gin.Engine) {
	api := r.Group("/api/vehicles")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", handlers.ListVehicles)
		api.POST("", handlers.RegisterVehicle)
		api.PUT("/:id", handlers.UpdateVehicle)
		api.DELETE("/:id", handlers.DeleteVehicle)
	}
}

// RegisterCatalogRoutes registers branch and service-offering endpoints.
// Browsing is public; management is manager only.
func RegisterCatalogRoutes(r *gin.Engine) {
	branches := r.Group("/api/branches")
	{
		branches.GET("", handlers.ListBranches)
		branches.GET("/:id", handlers.GetBranch)

		protected := branches.Group("")
		protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleManager))
		protected.POST("", handlers.CreateBranch)
		protected.PUT("/:id", handlers.UpdateBranch)
		protected.DELETE("/:id", handlers.DeleteBranch)
	}

	services := r.Group("/api/services")
	{
		services.GET("", handlers.ListServices)
		services.GET("/:id", handlers.GetService)

		protected := services.Group("")
		protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleManager))
		protected.POST("", handlers.CreateService)
		protected.PUT("/:id", handlers.UpdateService)
		protected.DELETE("/:id", handlers.DeleteService)
	}
}

// RegisterStaffRoutes registers staff onboarding. Manager only.
func RegisterStaffRoutes(r *gin.Engine) {
	api := r.Group("/api/staff")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleManager))
		api.POST("", handlers.RegisterStaff)
	}
}

// RegisterBookingRoutes sets up the booking engine endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())

		api.POST("/availability", handlers.CheckAvailability)
		api.GET("/unavailable-dates", handlers.UnavailableDates)
		api.POST("", handlers.RequestBooking)
		api.GET("/mine", handlers.ListMyBookings)
		api.GET("/:id", handlers.GetBooking)
		api.POST("/:id/final-payment", handlers.RequestFinalPayment)
		api.DELETE("/:id", handlers.DeleteBooking)

		staff := api.Group("")
		staff.Use(middleware.RequireRole(models.RoleStaff, models.RoleManager))
		staff.GET("/branch", handlers.ListBranchBookings)
		staff.PUT("/:id/status", handlers.SetBookingStatus)
		staff.POST("/:id/notes", handlers.AddBookingNote)
		staff.DELETE("/:id/notes/:noteId", handlers.RemoveBookingNote)
		staff.PUT("/:id/bill", handlers.SetBookingBill)
		staff.POST("/:id/cash-payment", handlers.RecordCashPayment)
	}
}

// RegisterPaymentRoutes registers the payment provider webhook. It is
// unauthenticated; the signature header is the credential.
func RegisterPaymentRoutes(r *gin.Engine) {
	r.POST("/api/payments/webhook", handlers.StripeWebhook)
}

// RegisterFeedbackRoutes registers review endpoints.
func RegisterFeedbackRoutes(r *gin.Engine) {
	api := r.Group("/api/feedback")
	{
		api.GET("/published", handlers.ListPublishedFeedback)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/mine", handlers.ListMyFeedback)
		protected.POST("", handlers.CreateFeedback)
		protected.PUT("/:id", handlers.UpdateFeedback)
		protected.DELETE("/:id", handlers.DeleteFeedback)

		manager := api.Group("")
		manager.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleManager))
		manager.GET("", handlers.ListAllFeedback)
		manager.PUT("/:id/published", handlers.ToggleFeedbackPublished)
	}
}

// RegisterStatsRoutes registers the manager dashboard counters.
func RegisterStatsRoutes(r *gin.Engine) {
	api := r.Group("/api/stats")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleManager))
		api.GET("", handlers.DashboardStats)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r)
	RegisterUserRoutes(r)
	RegisterVehicleRoutes(r)
	RegisterCatalogRoutes(r)
	RegisterStaffRoutes(r)
	RegisterBookingRoutes(r)
	RegisterPaymentRoutes(r)
	RegisterFeedbackRoutes(r)
	RegisterStatsRoutes(r)
	RegisterHealthRoute(r)
}
