package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrItemNotFound indicates the requested item is not in the catalog.
var ErrItemNotFound = errors.New("catalog: item not found")

const itemsCacheKey = "catalog:items"

// Service orchestrates catalog reads with Redis caching.
type Service struct {
	client Client
	cache  *Cache
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Client Client
	Cache  *Cache
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Client == nil {
		return nil, errors.New("catalog: client is required")
	}
	return &Service{client: cfg.Client, cache: cfg.Cache}, nil
}

// ListItems returns all orderable items, served from cache when warm.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	var cached []Item
	if hit, err := s.cache.GetJSON(ctx, itemsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	items, err := s.client.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, itemsCacheKey, items)
	return items, nil
}

// GetItem returns a single item by id.
func (s *Service) GetItem(ctx context.Context, id int64) (Item, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// Ping probes the upstream catalog endpoint.
func (s *Service) Ping(ctx context.Context, timeout time.Duration) error {
	return s.client.Ping(ctx, timeout)
}
