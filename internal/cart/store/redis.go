package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront_backend/internal/cart/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// RedisStore keeps each session's cart as a JSON document under a TTL'd key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a cart store backed by the given Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Compile-time check that RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Load fetches the session's cart. A missing key is an empty cart.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

// Save writes the cart back, refreshing the session TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the session's cart entirely.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
