package routes

import (
	"pizzeria/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers booking and event endpoints. Creating a booking and reading the
// calendar stay public.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("/", hb.Bookings.CreateBooking)
		bookings.GET("/calendar/:year/:month", hb.Bookings.Calendar)

		bookings.GET("/", admin, hb.Bookings.ListBookings)
		bookings.GET("/:id", admin, hb.Bookings.GetBooking)
		bookings.PUT("/:id", admin, hb.Bookings.UpdateBooking)
		bookings.DELETE("/:id", admin, hb.Bookings.CancelBooking)
	}

	events := r.Group("/api/events")
	{
		events.GET("/published", hb.Events.PublishedEvents)

		events.Use(admin)
		events.POST("/", hb.Events.CreateEvent)
		events.GET("/", hb.Events.ListEvents)
		events.GET("/booking/:booking_id", hb.Events.EventsByBooking)
		events.GET("/:id", hb.Events.GetEvent)
		events.PUT("/:id", hb.Events.UpdateEvent)
		events.PUT("/:id/financials", hb.Events.UpdateFinancials)
		events.POST("/:id/request-review", hb.Events.RequestReview)
	}
}
