package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobhunt-insights/internal/config"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// RedisClient wraps the Redis client with namespaced, TTL-bound values
type RedisClient struct {
	client *redis.Client
	prefix string
}

// NewRedisClient creates a new Redis client instance. An unparsable URL
// falls back to localhost.
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	timeout := cfg.Redis.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	opts.MaxRetries = 1

	return &RedisClient{
		client: redis.NewClient(opts),
		prefix: "jobhunt:",
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) key(namespace, id string) string {
	return r.prefix + namespace + ":" + id
}

// GetString returns the stored value or ErrCacheMiss
func (r *RedisClient) GetString(ctx context.Context, namespace, id string) (string, error) {
	val, err := r.client.Get(ctx, r.key(namespace, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", namespace, err)
	}
	return val, nil
}

// SetString stores value under namespace/id for ttl
func (r *RedisClient) SetString(ctx context.Context, namespace, id, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(namespace, id), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", namespace, err)
	}
	return nil
}

// GetJSON decodes the stored value into dst
func (r *RedisClient) GetJSON(ctx context.Context, namespace, id string, dst interface{}) error {
	val, err := r.GetString(ctx, namespace, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", namespace, err)
	}
	return nil
}

// SetJSON encodes value and stores it for ttl
func (r *RedisClient) SetJSON(ctx context.Context, namespace, id string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", namespace, err)
	}
	return r.SetString(ctx, namespace, id, string(data), ttl)
}
