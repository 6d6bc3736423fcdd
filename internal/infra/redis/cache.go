package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Minute

// NotificationCache is a read cache for notification lookups. Entries are
// written after the final dispatch state is persisted and on cache misses, so
// a cached record is never staler than the TTL.
type NotificationCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewNotificationCache(client *goredis.Client, ttl time.Duration) (*NotificationCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &NotificationCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func cacheKey(id uint) string {
	return fmt.Sprintf("notification:%d", id)
}

func (c *NotificationCache) Get(ctx context.Context, id uint) (*domain.Notification, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, fmt.Errorf("cache is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var n domain.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		// A corrupt entry is dropped rather than served.
		_ = c.client.Del(ctx, cacheKey(id)).Err()
		return nil, false, nil
	}

	return &n, true, nil
}

func (c *NotificationCache) Set(ctx context.Context, n *domain.Notification) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache is not initialized")
	}
	if n == nil || n.ID == 0 {
		return fmt.Errorf("notification with assigned id is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(n.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

func (c *NotificationCache) Invalidate(ctx context.Context, id uint) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
