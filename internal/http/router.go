package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pagetrail/backend/internal/config"
	"github.com/pagetrail/backend/internal/http/handlers"
	"github.com/pagetrail/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	visitHandler *handlers.VisitHandler,
	consentHandler *handlers.ConsentHandler,
	adminHandler *handlers.AdminHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowCredentials: false,
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Consent (public, no body)
	api.Post("/consent", consentHandler.GrantConsent)
	api.Get("/consent", consentHandler.GetConsent)

	// Ingest (public, rate limited, fail-open)
	api.Post("/log",
		middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute),
		visitHandler.LogVisit)

	// Admin viewer behind basic auth
	admin := api.Group("/admin", basicauth.New(basicauth.Config{
		Users: map[string]string{cfg.AdminUser: cfg.AdminPassword},
	}))
	admin.Get("/logs", adminHandler.ListLogs)
	admin.Use("/logs/live", handlers.WSUpgradeMiddleware())
	admin.Get("/logs/live", websocket.New(wsHub.HandleWS))
}
