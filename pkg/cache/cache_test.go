package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "roles:7", Key("roles", uint(7)))
	assert.Equal(t, "products:00042", Key("products", "00042"))
}

func TestMemoryRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got role
	assert.False(t, m.Get(ctx, "roles:1", &got))

	require.NoError(t, m.Set(ctx, "roles:1", role{ID: 1, Name: "admin"}, time.Minute))
	require.True(t, m.Get(ctx, "roles:1", &got))
	assert.Equal(t, "admin", got.Name)

	require.NoError(t, m.Del(ctx, "roles:1"))
	assert.False(t, m.Has("roles:1"))
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", 1, time.Second))
	assert.True(t, m.Has("k"))

	now = now.Add(2 * time.Second)
	var v int
	assert.False(t, m.Get(ctx, "k", &v))
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var n Store = Nop{}
	require.NoError(t, n.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.False(t, n.Get(ctx, "k", &v))
	assert.NoError(t, n.Del(ctx, "k"))
}

func TestRedisUnreachableIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedis(rdb)
	t.Cleanup(func() { _ = r.Close() })

	var v role
	assert.False(t, r.Get(context.Background(), "roles:1", &v))
	assert.Error(t, r.Set(context.Background(), "roles:1", v, time.Minute))
}

func TestConnectWithoutAddrIsNop(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	store, err := Connect(context.Background())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, store)
}
