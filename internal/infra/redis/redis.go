package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const startupPingWait = 5 * time.Second

func NewRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	// Shows up in CLIENT LIST, which helps when several services share
	// the instance.
	opts.ClientName = "communication-service"

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), startupPingWait)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
