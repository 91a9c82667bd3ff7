package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const cartKeyPrefix = "cart:"

// DefaultCartTTL bounds how long an abandoned cart survives
const DefaultCartTTL = 7 * 24 * time.Hour

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a cart store backed by Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *redisStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cart for a key, or an empty cart when none is stored
func (s *redisStore) Get(ctx context.Context, key string) (*Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &cart, nil
}

// Save persists the cart for a key with the configured TTL
func (s *redisStore) Save(ctx context.Context, key string, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Delete removes the stored cart for a key
func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
