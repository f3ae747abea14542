package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

var (
	_ domain.ReportCache = (*RedisCache)(nil)
	_ domain.ReportCache = Noop{}
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := Noop{}

	assert.NoError(t, c.Set(ctx, "key", map[string]int{"a": 1}))

	var dest map[string]int
	err := c.Get(ctx, "key", &dest)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	assert.Nil(t, dest)

	gen, err := c.Generation(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), gen)
	assert.NoError(t, c.Invalidate(ctx, uuid.New()))
}

func TestGenerationKey(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "wealthtrack:portfolio:11111111-2222-3333-4444-555555555555:generation", generationKey(id))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	// Nothing listens on port 1: every call must fail with a wrapped error, never a miss
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client, time.Minute)
	defer c.Close()

	ctx := context.Background()

	var dest map[string]int
	err := c.Get(ctx, "key", &dest)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrCacheMiss))

	_, err = c.Generation(ctx, uuid.New())
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, "key", 1))
	assert.Error(t, c.Invalidate(ctx, uuid.New()))
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(Noop{}))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewRedisCacheFromClient(client, time.Minute)

	assert.NoError(t, Close(c))

	// The client is released: further calls fail without dialing
	_, err := c.Generation(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, redis.ErrClosed))
}
