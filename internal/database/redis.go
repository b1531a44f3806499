package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// ConnectRedis opens the dashboard cache. raw may be a redis:// URL or a bare host:port;
// an empty value disables caching and returns a nil client.
func ConnectRedis(ctx context.Context, raw string) (*redis.Client, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	options, err := redisOptions(raw)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", options.Addr, err)
	}

	return client, nil
}

func redisOptions(raw string) (*redis.Options, error) {
	if !strings.Contains(raw, "://") {
		return &redis.Options{Addr: raw}, nil
	}
	options, err := redis.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return options, nil
}
