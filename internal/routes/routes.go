package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/campus-services/lostfound-backend/internal/config"
	"github.com/campus-services/lostfound-backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	itemsHandler *handlers.ItemsHandler,
	reportsHandler *handlers.ReportsHandler,
) {
	api := app.Group(cfg.APIPrefix)

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/health/firestore", healthHandler.CheckFirestore)

	// Public browsing
	api.Get("/items", itemsHandler.ListItems)
	api.Get("/items/:id", itemsHandler.GetItem)

	// Report submission carries photo uploads; rate limit it harder:
	// 10 req/min per IP
	reports := api.Group("/reports")
	reports.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	reports.Post("/lost", reportsHandler.CreateLostReport)
	reports.Post("/found", reportsHandler.CreateFoundReport)
}
