package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"jobhunt-insights/pkg/utils"
)

// Cache stores extracted job text by URL.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, text string) error
}

// NoopCache never hits.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NoopCache) Set(context.Context, string, string) error         { return nil }

// RedisCache keeps scraped descriptions in Redis for ttl.
type RedisCache struct {
	client *utils.RedisClient
	ttl    time.Duration
}

func NewRedisCache(client *utils.RedisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, bool, error) {
	text, err := c.client.GetString(ctx, "scrape", cacheKey(url))
	if errors.Is(err, utils.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (c *RedisCache) Set(ctx context.Context, url, text string) error {
	return c.client.SetString(ctx, "scrape", cacheKey(url), text, c.ttl)
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
