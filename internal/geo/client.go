package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pagetrail/backend/internal/privacy"
	"go.uber.org/zap"
)

// Location is the coarse, city-level result of a lookup. Nothing finer than
// city is requested or stored.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// Client looks up coarse locations against an ip-api.com style endpoint.
// Lookups are strictly best-effort: every failure mode (timeout, non-2xx,
// bad body, provider-reported miss) collapses to a nil Location so the
// log-write path never waits longer than the configured timeout and never
// sees an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

type providerResponse struct {
	Status     string `json:"status"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
}

// Lookup returns the location for addr, or nil when no data is available.
// An unresolvable address short-circuits without a network call.
func (c *Client) Lookup(ctx context.Context, addr string) *Location {
	if addr == "" || addr == privacy.Unknown {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s?fields=status,country,regionName,city", c.baseURL, addr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("geo lookup failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("geo provider returned non-OK status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Debug("geo response decode failed", zap.Error(err))
		return nil
	}
	if body.Status != "success" {
		return nil
	}

	return &Location{
		Country: body.Country,
		Region:  body.RegionName,
		City:    body.City,
	}
}
