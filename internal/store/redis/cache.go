// Package redis provides the hot-session cache in front of the durable store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vettalabs/vetta/internal/domain"
)

const keyPrefix = "interview:session:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.Cache.Close: %w", err)
	}
	return nil
}

// Get returns the cached session, or domain.ErrNotFound on a cache miss.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	raw, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis.Cache.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Cache.Get: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("redis.Cache.Get: decode: %w", err)
	}

	return &s, nil
}

// Set stores the session with the cache TTL.
func (c *Cache) Set(ctx context.Context, s *domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis.Cache.Set: encode: %w", err)
	}

	if err := c.client.Set(ctx, sessionKey(s.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Cache.Set: %w", err)
	}

	return nil
}

// Delete evicts a session from the cache.
func (c *Cache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis.Cache.Delete: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}
