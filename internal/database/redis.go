package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spicelab/recipebox/config"
)

// NewRedisClient connects to Redis for the rate limiter. Returns nil without
// error when no address is configured; rate limiting is optional.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	slog.Info("connected to Redis", "addr", cfg.RedisAddr)
	return client, nil
}
