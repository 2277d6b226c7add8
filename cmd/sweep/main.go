// Command sweep runs one retention pass and exits. Useful for ops runbooks
// and for pruning a database while the API is down.
package main

import (
	"context"
	"flag"

	"github.com/pagetrail/backend/internal/config"
	"github.com/pagetrail/backend/internal/db"
	"github.com/pagetrail/backend/internal/repositories"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()

	days := flag.Int("days", cfg.RetentionDays, "delete visits older than this many days")
	flag.Parse()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	visitRepo := repositories.NewVisitRepo(pool)
	deleted, err := visitRepo.DeleteOlderThan(ctx, *days)
	if err != nil {
		log.Fatal("sweep failed", zap.Error(err))
	}

	log.Info("sweep completed", zap.Int64("deleted", deleted), zap.Int("horizon_days", *days))
}
