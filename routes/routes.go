package routes

import (
	"net/http"
	"strings"
	"time"

	"matehub/handlers"
	"matehub/middleware"
	"matehub/models"
	"matehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the global middleware.
type Options struct {
	// FrontAPI is a comma-separated list of allowed CORS origins; empty or "*" allows all.
	FrontAPI          string
	MaxRequestsPerMin int
}

// RegisterBookingRoutes registers the hold, payment-confirmation and lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking", middleware.JWTAuthMiddleware())
	{
		renter := api.Group("", middleware.RequireRole(models.RoleRenter))
		renter.POST("/book", hb.Booking.CreateHoldHandler)
		renter.POST("/confirmbooking", hb.Booking.ConfirmBookingHandler)
		renter.GET("/booking-data", hb.Booking.GetHoldSummaryHandler)
		renter.GET("/mate-profile", hb.Booking.GetMateProfileHandler)
		renter.GET("/unavailable", hb.Booking.UnavailableSlotsHandler)
		renter.GET("/transactions", hb.Booking.ListRenterTransactionsHandler)
		renter.POST("/cancel/:id", hb.Booking.CancelHandler)

		mate := api.Group("", middleware.RequireRole(models.RoleMate))
		mate.GET("/requests", hb.Booking.ListRequestsHandler)
		mate.POST("/:id/accept", hb.Booking.AcceptHandler)
		mate.POST("/:id/reject", hb.Booking.RejectHandler)
		mate.GET("/mate", hb.Booking.ListMateTransactionsHandler)
		mate.POST("/end/:id", hb.Booking.EndHandler)
	}
}

// RegisterPaymentRoutes registers the payment intent endpoint.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payment", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleRenter))
	{
		api.POST("/create-payment-intent", hb.Booking.CreatePaymentIntentHandler)
	}
}

// RegisterReviewRoutes registers the review endpoint.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/review", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleRenter))
	{
		api.POST("/booking/:id", hb.Booking.ReviewHandler)
	}
}

// RegisterMateRoutes registers a mate's own-profile endpoints.
func RegisterMateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/mate", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleMate))
	{
		api.GET("/me", hb.Mate.GetOwnProfileHandler)
		api.PUT("/me", hb.Mate.UpdateOwnProfileHandler)
	}
}

// RegisterAuthRoutes registers the shared mate/renter sign-in endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm matehub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(corsConfig(opts.FrontAPI)))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterMateRoutes(r, hb)
}

func corsConfig(frontAPI string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	var origins []string
	for _, o := range strings.Split(frontAPI, ",") {
		if o = strings.TrimSpace(o); o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		} else if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
