package main

import (
	"errors"
	"log"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/handlers"
	"github.com/brightpath/tutor_match/jobs"
	"github.com/brightpath/tutor_match/notifications"
	"github.com/brightpath/tutor_match/routes"
	"github.com/brightpath/tutor_match/services"
	"github.com/brightpath/tutor_match/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Shutdown()
	handlers.NotificationHub = hub
	services.SetNotifier(notifications.NewDispatcher(hub))

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SendSessionReminders)
	c.AddFunc("*/5 * * * *", jobs.ExpireStalePendingRequests)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Tutor Match",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == apperrors.CodeInternal {
					log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
				}
				return c.Status(appErr.HTTPStatus).JSON(fiber.Map{
					"status":  "error",
					"code":    appErr.Code,
					"message": appErr.Message,
					"details": appErr.Details,
				})
			}

			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Tutor Match API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.AvailabilityRoutes(app)
	routes.BookingRoutes(app)
	routes.AdminRoutes(app)
	routes.NotificationRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
