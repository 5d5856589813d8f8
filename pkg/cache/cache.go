// Package cache is the read-through cache used for get-by-id lookups.
//
// A Store never fails a request: a broken backend behaves like a miss on
// read, and the error of a write is returned for logging only.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/bizapi/config"
	"github.com/shashiranjanraj/bizapi/pkg/metrics"
)

// Store is a JSON value cache.
type Store interface {
	// Get unmarshals the cached value into dest. Returns true on a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key builds the cache key of one row: "<table>:<id>".
func Key(table string, id interface{}) string {
	return fmt.Sprintf("%s:%v", table, id)
}

// Connect returns a Redis store when REDIS_ADDR is set and answers a ping,
// and a Nop store otherwise. The error explains why the cache is off.
func Connect(ctx context.Context) (Store, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return Nop{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return Nop{}, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedis(rdb), nil
}

// ─── Redis ────────────────────────────────────────────────────────────────────

// Redis stores values as JSON strings.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		err = json.Unmarshal(val, dest)
	}
	metrics.CacheLookup("redis", err == nil)
	return err == nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, data, ttl).Err()
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// ─── Nop ──────────────────────────────────────────────────────────────────────

// Nop is the store used when no cache is configured. Every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) bool { return false }

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Nop) Del(context.Context, ...string) error { return nil }

// ─── Memory ───────────────────────────────────────────────────────────────────

// Memory is an in-process store, used by tests and single-node setups.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryItem), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) bool {
	m.mu.Lock()
	item, ok := m.items[key]
	if ok && !item.expiresAt.IsZero() && m.now().After(item.expiresAt) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()

	hit := ok && json.Unmarshal(item.data, dest) == nil
	metrics.CacheLookup("memory", hit)
	return hit
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

// Has reports whether key holds an unexpired value.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	return ok && (item.expiresAt.IsZero() || !m.now().After(item.expiresAt))
}
