package routes

import (
	"github.com/brightpath/tutor_match/handlers"
	"github.com/brightpath/tutor_match/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Post("", handlers.CreateBooking)
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/provider", handlers.GetProviderBookings)

	requests := booking.Group("/requests")
	requests.Get("/pending", handlers.GetPendingRequests)
	requests.Get("/all", handlers.GetAllRequests)
	requests.Put("/:id/status", middleware.ProviderRequired(), handlers.ProcessRequest)

	booking.Get("/:id", handlers.GetBookingByID)
	booking.Put("/:id/cancel", handlers.CancelBooking)
	booking.Patch("/:id/status", handlers.UpdateBookingStatus)
}
