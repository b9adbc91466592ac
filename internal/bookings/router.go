package bookings

import (
	"eventplanner/internal/shared/config"
	"eventplanner/internal/shared/middleware"
	"eventplanner/internal/users"

	"github.com/gin-gonic/gin"
)

// Router handles booking routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all booking routes. Every route requires a valid
// access token; per-booking authorization happens in the services.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(r.config))
	{
		bookings.POST("", middleware.RequireRoles(users.RoleCustomer), r.controller.CreateBooking)
		bookings.GET("", r.controller.ListBookings)

		// Registered before /:id so "stats" is not parsed as a booking ID
		bookings.GET("/stats/overview", r.controller.GetBookingStats)

		bookings.GET("/:id", r.controller.GetBooking)
		bookings.PUT("/:id", r.controller.UpdateBooking)
		bookings.PATCH("/:id/status", r.controller.UpdateBookingStatus)
		bookings.DELETE("/:id", r.controller.DeleteBooking)
	}
}
