package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"capsule-os/logging"
)

const redisKeyPrefix = "capsule:"

// Connect initializes a Redis client from a redis:// URL or host:port and pings it
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Redis stores cache entries in Redis with native expiry
type Redis struct {
	client *redis.Client
}

// NewRedis wraps a connected client
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ensure Redis implements Cache
var _ Cache = (*Redis)(nil)

// Get reads key, any Redis error is treated as a miss
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn().Err(err).Str("key", key).Msg("⚠️  Redis get failed, treating as miss")
		}
		return nil, false
	}
	return raw, true
}

// Set writes key with ttl, failures are logged and dropped
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("⚠️  Redis set failed")
	}
}

// Close releases the underlying client
func (c *Redis) Close() error {
	return c.client.Close()
}
