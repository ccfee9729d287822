// Package registry resolves named upstream pools to instance base URLs.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

// Registry maps a pool name (e.g. "AUTH-SERVICE") to its live instances.
type Registry interface {
	Lookup(pool string) []string
}

// Static serves a fixed pool table, typically seeded from environment
// variables. Used when no external registry is configured and in tests.
type Static struct {
	pools map[string][]string
}

func NewStatic(pools map[string][]string) *Static {
	return &Static{pools: pools}
}

func (s *Static) Lookup(pool string) []string {
	return s.pools[pool]
}

// HTTP polls an external registry endpoint and serves the last good
// snapshot. A failed refresh keeps the previous table.
type HTTP struct {
	url     string
	refresh time.Duration
	client  *http.Client

	mu    sync.RWMutex
	pools map[string][]string
}

func NewHTTP(url string, refresh time.Duration) *HTTP {
	return &HTTP{
		url:     url,
		refresh: refresh,
		client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		pools: map[string][]string{},
	}
}

func (h *HTTP) Lookup(pool string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pools[pool]
}

// Run refreshes the pool table until ctx is cancelled. The first refresh is
// synchronous so the gateway starts with a populated table.
func (h *HTTP) Run(ctx context.Context) {
	l := logging.FromContext(ctx).With("component", "registry")
	if err := h.Refresh(ctx); err != nil {
		l.Warn("initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.Refresh(ctx); err != nil {
				l.Warn("refresh failed", "error", err)
			}
		}
	}
}

func (h *HTTP) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url+"/v1/services", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registry responded %d", resp.StatusCode)
	}

	var pools map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&pools); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	h.mu.Lock()
	h.pools = pools
	h.mu.Unlock()
	return nil
}
