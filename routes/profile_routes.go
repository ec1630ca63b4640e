package routes

import (
	"github.com/brightpath/tutor_match/handlers"
	"github.com/brightpath/tutor_match/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/providers", handlers.ListProviders)
	api.Get("/providers/:providerId", handlers.GetProviderProfile)

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpsertMyProfile)
	profile.Post("/me/avatar", handlers.SetAvatar)
	profile.Get("/upload-signature", handlers.GenerateUploadSignature)
}
