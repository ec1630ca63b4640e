package routes

import (
	"github.com/brightpath/tutor_match/handlers"
	"github.com/brightpath/tutor_match/middleware"
	"github.com/gofiber/fiber/v2"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/availability/providers", handlers.GetAllProvidersAvailability)
	api.Get("/availability/provider/:providerId", handlers.GetProviderAvailability)

	availability := api.Group("/availability", middleware.Protected())
	availability.Post("", middleware.ProviderRequired(), handlers.CreateAvailability)
	availability.Get("/me", handlers.GetMyAvailability)
	availability.Put("/:id", middleware.ProviderRequired(), handlers.UpdateAvailability)
	availability.Delete("/:id", middleware.ProviderRequired(), handlers.DeleteAvailability)
}
