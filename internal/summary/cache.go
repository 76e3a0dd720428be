package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps backend summaries keyed by a hash of the (truncated)
// content, so re-summarizing unchanged text skips the backend call.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(Truncate(content)))
	return "summary:" + hex.EncodeToString(sum[:])
}

func (c *Cache) Get(ctx context.Context, content string) (string, bool, error) {
	v, err := c.client.Get(ctx, cacheKey(content)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

func (c *Cache) Set(ctx context.Context, content, summaryText string) error {
	if err := c.client.Set(ctx, cacheKey(content), summaryText, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
