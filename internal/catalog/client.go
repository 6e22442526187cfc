package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/backend-pos/internal/resilience"
)

// Client reads orderable items from the upstream catalog endpoint.
type Client interface {
	ListItems(ctx context.Context) ([]Item, error)
	Ping(ctx context.Context, timeout time.Duration) error
}

// HTTPClient talks to the catalog-read endpoint over HTTP.
type HTTPClient struct {
	BaseURL string
	HTTP    resilience.HTTPClient
}

type listEnvelope struct {
	Data []Item `json:"data"`
}

// ListItems fetches the full orderable item list.
func (c HTTPClient) ListItems(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/items"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("catalog: list items: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: list items: unexpected status %s", resp.Status)
	}
	var envelope listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("catalog: decode items: %w", err)
	}
	return envelope.Data, nil
}

// Ping probes the upstream catalog for readiness checks.
func (c HTTPClient) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/healthz"), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("catalog upstream unhealthy: %s", resp.Status)
	}
	return nil
}

func (c HTTPClient) url(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}
