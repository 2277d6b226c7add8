package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/http/dto"
	"github.com/pagetrail/backend/internal/models"
	"go.uber.org/zap"
)

type stubStore struct {
	visits    []models.Visit
	lastLimit int
	lastOff   int
}

func (s *stubStore) Insert(ctx context.Context, v *models.Visit) error { return nil }

func (s *stubStore) List(ctx context.Context, limit, offset int) ([]models.Visit, error) {
	s.lastLimit = limit
	s.lastOff = offset
	if offset >= len(s.visits) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.visits) {
		end = len(s.visits)
	}
	return s.visits[offset:end], nil
}

func (s *stubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.visits)), nil
}

func (s *stubStore) DeleteOlderThan(ctx context.Context, horizonDays int) (int64, error) {
	return 0, nil
}

func newVisits(n int) []models.Visit {
	visits := make([]models.Visit, n)
	for i := range visits {
		// Stored most-recent-first, as the repository would return them.
		visits[i] = models.Visit{
			ID:        int64(n - i),
			CreatedAt: time.Now().UTC(),
			MaskedIP:  "203.0.x.x",
			Pseudonym: "abc",
			Path:      "/",
		}
	}
	return visits
}

func listLogs(t *testing.T, store *stubStore, url string) dto.LogListResponse {
	t.Helper()

	app := fiber.New()
	h := NewAdminHandler(store, zap.NewNop())
	app.Get("/logs", h.ListLogs)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out dto.LogListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestListLogsPagination(t *testing.T) {
	store := &stubStore{visits: newVisits(15)}
	out := listLogs(t, store, "/logs?limit=10&offset=0")

	if out.Total != 15 {
		t.Errorf("total = %d, want 15", out.Total)
	}
	if len(out.Logs) != 10 {
		t.Fatalf("returned %d logs, want 10", len(out.Logs))
	}
	// Descending recency: the newest append has the highest id.
	for i := 1; i < len(out.Logs); i++ {
		if out.Logs[i].ID >= out.Logs[i-1].ID {
			t.Errorf("logs not in descending id order at %d: %d then %d", i, out.Logs[i-1].ID, out.Logs[i].ID)
		}
	}
	if out.Logs[0].ID != 15 {
		t.Errorf("first log id = %d, want 15", out.Logs[0].ID)
	}
}

func TestListLogsClampsBadParams(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/logs", defaultListLimit, 0},
		{"oversized limit", "/logs?limit=99999", defaultListLimit, 0},
		{"negative limit", "/logs?limit=-5", defaultListLimit, 0},
		{"negative offset", "/logs?offset=-3", defaultListLimit, 0},
		{"garbage", "/logs?limit=abc&offset=xyz", defaultListLimit, 0},
		{"valid", "/logs?limit=25&offset=50", 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{visits: newVisits(100)}
			listLogs(t, store, tt.url)
			if store.lastLimit != tt.wantLimit {
				t.Errorf("limit passed to store = %d, want %d", store.lastLimit, tt.wantLimit)
			}
			if store.lastOff != tt.wantOffset {
				t.Errorf("offset passed to store = %d, want %d", store.lastOff, tt.wantOffset)
			}
		})
	}
}
