package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/simaogato/wealthtrack-backend/internal/config"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

const keyPrefix = "wealthtrack:"

// RedisCache implements domain.ReportCache on top of Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and checks the connection
func NewRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheFromClient(client, cfg.TTL), nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get retrieves a value and unmarshals it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrCacheMiss
		}
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return nil
}

// Set stores a value as JSON with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Generation returns the current generation of a portfolio
func (c *RedisCache) Generation(ctx context.Context, portfolioID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(portfolioID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get generation of portfolio %s: %w", portfolioID, err)
	}
	return gen, nil
}

// Invalidate bumps the generation of a portfolio
func (c *RedisCache) Invalidate(ctx context.Context, portfolioID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(portfolioID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate portfolio %s: %w", portfolioID, err)
	}
	return nil
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Close releases the connection held by a report cache, if it holds one
func Close(c domain.ReportCache) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func generationKey(portfolioID uuid.UUID) string {
	return keyPrefix + "portfolio:" + portfolioID.String() + ":generation"
}
