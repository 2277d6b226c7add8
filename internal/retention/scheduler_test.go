package retention

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeStore struct {
	calls   int
	days    []int
	deleted int64
	err     error
}

func (f *fakeStore) DeleteOlderThan(ctx context.Context, horizonDays int) (int64, error) {
	f.calls++
	f.days = append(f.days, horizonDays)
	return f.deleted, f.err
}

func TestStartRunsEagerSweep(t *testing.T) {
	store := &fakeStore{deleted: 3}
	s := NewScheduler(store, 30, zap.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if store.calls != 1 {
		t.Errorf("eager sweep ran %d times, want 1", store.calls)
	}
	if len(store.days) == 0 || store.days[0] != 30 {
		t.Errorf("sweep used horizon %v, want 30", store.days)
	}
}

func TestSweepErrorDoesNotPropagate(t *testing.T) {
	store := &fakeStore{err: errors.New("deadlock detected")}
	s := NewScheduler(store, 30, zap.NewNop())

	// Must not panic or return the store error; the next scheduled run will
	// retry.
	s.Sweep(context.Background())

	if store.calls != 1 {
		t.Errorf("sweep ran %d times, want 1", store.calls)
	}
}

func TestSweepRepeatable(t *testing.T) {
	store := &fakeStore{}
	s := NewScheduler(store, 7, zap.NewNop())

	s.Sweep(context.Background())
	s.Sweep(context.Background())

	if store.calls != 2 {
		t.Errorf("sweep ran %d times, want 2", store.calls)
	}
	for _, d := range store.days {
		if d != 7 {
			t.Errorf("sweep horizon = %d, want 7", d)
		}
	}
}
