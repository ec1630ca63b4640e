package routes

import (
	"github.com/brightpath/tutor_match/handlers"
	"github.com/brightpath/tutor_match/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/bookings", handlers.AdminGetAllBookings)
	admin.Get("/bookings/statistics", handlers.GetBookingStatistics)
	admin.Get("/tutors/:tutorId/requests", handlers.GetTutorRequestsAdmin)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
}
