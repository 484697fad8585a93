// Package cartstore persists cart snapshots per storefront session. The
// reducer itself is storage-free; this is the injected read/write
// capability the session layer uses around it.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"luxelush/internal/cart"
)

// Store loads and saves cart state keyed by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (cart.State, error)
	Save(ctx context.Context, sessionID string, state cart.State) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps carts as JSON under cart:<session> with a TTL, so
// abandoned session carts age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

// Load returns the stored cart, or the empty state when the session has
// no cart yet.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (cart.State, error) {
	raw, err := s.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return cart.Empty(), nil
	}
	if err != nil {
		return cart.State{}, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var state cart.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return cart.State{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	if state.Items == nil {
		state.Items = []cart.Item{}
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state cart.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", sessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
