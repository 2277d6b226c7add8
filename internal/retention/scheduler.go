// Package retention prunes visits past the configured horizon. Sweeps run on
// their own timeline and share nothing with the request path except the
// connection pool.
package retention

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Quiet hour, well clear of typical traffic.
const sweepSchedule = "5 2 * * *"

// Store is the slice of the log store the sweeper needs.
type Store interface {
	DeleteOlderThan(ctx context.Context, horizonDays int) (int64, error)
}

type Scheduler struct {
	store       Store
	horizonDays int
	server      *cron.Cron
	log         *zap.Logger
}

func NewScheduler(store Store, horizonDays int, log *zap.Logger) *Scheduler {
	return &Scheduler{
		store:       store,
		horizonDays: horizonDays,
		server:      cron.New(cron.WithLocation(time.UTC)),
		log:         log,
	}
}

// Start runs one eager sweep, then schedules the daily one. The eager run
// bounds growth for deployments that restart before the daily slot fires.
func (s *Scheduler) Start(ctx context.Context) error {
	s.Sweep(ctx)

	if _, err := s.server.AddFunc(sweepSchedule, func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}

	s.server.Start()
	s.log.Info("retention scheduler started",
		zap.String("schedule", sweepSchedule),
		zap.Int("horizon_days", s.horizonDays))
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	<-s.server.Stop().Done()
}

// Sweep deletes everything older than the horizon. Failures are logged and
// left for the next run; a sweep never takes the process down.
func (s *Scheduler) Sweep(ctx context.Context) {
	deleted, err := s.store.DeleteOlderThan(ctx, s.horizonDays)
	if err != nil {
		s.log.Error("retention sweep failed", zap.Error(err), zap.Int("horizon_days", s.horizonDays))
		return
	}
	s.log.Info("retention sweep completed",
		zap.Int64("deleted", deleted),
		zap.Int("horizon_days", s.horizonDays))
}
