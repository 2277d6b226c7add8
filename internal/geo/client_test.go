package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","country":"Netherlands","regionName":"North Holland","city":"Amsterdam"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	loc := c.Lookup(context.Background(), "203.0.113.7")
	if loc == nil {
		t.Fatal("Lookup returned nil for a successful response")
	}
	if loc.Country != "Netherlands" || loc.Region != "North Holland" || loc.City != "Amsterdam" {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestLookupNoData(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"provider fail status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, zap.NewNop())
			if loc := c.Lookup(context.Background(), "203.0.113.7"); loc != nil {
				t.Errorf("Lookup = %+v, want nil", loc)
			}
		})
	}
}

func TestLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"status":"success","country":"Nowhere"}`))
	}))
	defer srv.Close()

	timeout := 50 * time.Millisecond
	c := NewClient(srv.URL, timeout, zap.NewNop())

	start := time.Now()
	loc := c.Lookup(context.Background(), "203.0.113.7")
	elapsed := time.Since(start)

	if loc != nil {
		t.Errorf("Lookup = %+v, want nil on timeout", loc)
	}
	// The call must give up close to the configured timeout, not wait for the
	// slow provider.
	if elapsed > timeout+200*time.Millisecond {
		t.Errorf("Lookup took %v, want roughly %v", elapsed, timeout)
	}
}

func TestLookupUnknownShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	if loc := c.Lookup(context.Background(), "unknown"); loc != nil {
		t.Errorf("Lookup(unknown) = %+v, want nil", loc)
	}
	if loc := c.Lookup(context.Background(), ""); loc != nil {
		t.Errorf("Lookup(empty) = %+v, want nil", loc)
	}
	if called {
		t.Error("unknown address triggered a network call")
	}
}
