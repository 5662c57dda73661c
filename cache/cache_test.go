package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return New(client, "test:")
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "trip", Count: 3}, time.Minute))

	var got payload
	require.True(t, c.Get(ctx, "k1", &got))
	assert.Equal(t, "trip", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestCacheMiss(t *testing.T) {
	c := newTestCache(t)

	var got payload
	assert.False(t, c.Get(context.Background(), "absent", &got))
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "a"}, time.Minute))
	require.NoError(t, c.Set(ctx, "k2", payload{Name: "b"}, time.Minute))

	c.Delete(ctx, "k1", "k2")

	var got payload
	assert.False(t, c.Get(ctx, "k1", &got))
	assert.False(t, c.Get(ctx, "k2", &got))
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", payload{Name: "gone"}, 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	var got payload
	assert.False(t, c.Get(ctx, "short", &got))
}

func TestNilCacheIsNoop(t *testing.T) {
	c := New(nil, "test:")
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", payload{}, time.Minute))
	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
	c.Delete(ctx, "k")
}
