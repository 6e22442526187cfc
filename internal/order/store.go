package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates the session expired or never existed.
var ErrSessionNotFound = errors.New("order: session not found")

// Store persists sessions in Redis as JSON with a rolling TTL.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func (st *Store) key(id string) string {
	prefix := st.Prefix
	if prefix == "" {
		prefix = "pos:session:"
	}
	return prefix + id
}

func (st *Store) ttl() time.Duration {
	if st.TTL <= 0 {
		return 12 * time.Hour
	}
	return st.TTL
}

// Save writes the session and refreshes its TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	if st == nil || st.Client == nil {
		return errors.New("order: store not configured")
	}
	if s == nil || s.ID == "" {
		return errors.New("order: session id is required")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("order: encode session: %w", err)
	}
	return st.Client.Set(ctx, st.key(s.ID), data, st.ttl()).Err()
}

// Get loads a session by id.
func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	if st == nil || st.Client == nil {
		return nil, errors.New("order: store not configured")
	}
	data, err := st.Client.Get(ctx, st.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("order: decode session: %w", err)
	}
	if s.Lines == nil {
		s.Lines = make(map[int64]*Line)
	}
	return &s, nil
}

// Delete removes a session outright (submit or explicit cancel).
func (st *Store) Delete(ctx context.Context, id string) error {
	if st == nil || st.Client == nil {
		return errors.New("order: store not configured")
	}
	return st.Client.Del(ctx, st.key(id)).Err()
}
