package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/config"
	"github.com/pagetrail/backend/internal/db"
	"github.com/pagetrail/backend/internal/events"
	"github.com/pagetrail/backend/internal/geo"
	apphttp "github.com/pagetrail/backend/internal/http"
	"github.com/pagetrail/backend/internal/http/handlers"
	"github.com/pagetrail/backend/internal/privacy"
	"github.com/pagetrail/backend/internal/repositories"
	"github.com/pagetrail/backend/internal/retention"
	"github.com/pagetrail/backend/internal/services"
	"github.com/pagetrail/backend/migrations"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis (rate limiting + live-tail fan-out)
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Core pipeline
	visitRepo := repositories.NewVisitRepo(pool)
	pseudo := privacy.NewPseudonymizer(cfg.PseudonymSecret)
	geoClient := geo.NewClient(cfg.GeoBaseURL, cfg.GeoTimeout, log)
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)
	visitService := services.NewVisitService(visitRepo, geoClient, pseudo, publisher, log)

	// Retention
	scheduler := retention.NewScheduler(visitRepo, cfg.RetentionDays, log)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("failed to start retention scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Handlers
	visitHandler := handlers.NewVisitHandler(visitService, log)
	consentHandler := handlers.NewConsentHandler()
	adminHandler := handlers.NewAdminHandler(visitRepo, log)
	wsHub := handlers.NewWSHub(subscriber, log)
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, visitHandler, consentHandler, adminHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
