// Package cache is the key/value layer behind sessions and read-mostly
// catalog data. Redis is the production driver; an in-process memory
// driver takes over when Redis is unreachable and in tests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/metrics"
)

// ErrMiss is returned by drivers when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Driver is a byte-oriented key/value store with TTLs.
type Driver interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

var (
	mu     sync.RWMutex
	driver Driver = NewMemory()

	Ctx = context.Background()
)

// Connect points the package at Redis. When the ping fails the memory
// driver stays active and the error is returned so the caller can log it.
func Connect() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(Ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("cache: redis ping: %w", err)
	}

	Use(&redisDriver{rdb: rdb})
	return nil
}

// Use swaps the active driver.
func Use(d Driver) {
	mu.Lock()
	driver = d
	mu.Unlock()
}

// Current returns the active driver.
func Current() Driver {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	d := Current()

	raw, err := d.Get(Ctx, key)
	if err != nil {
		metrics.CacheMisses.WithLabelValues(d.Name()).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(d.Name()).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(d.Name()).Inc()
	return true
}

// Set stores value as JSON under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Current().Set(Ctx, key, data, ttl)
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return Current().Del(Ctx, keys...)
}

// Forget is an alias for Del.
func Forget(key string) error {
	return Del(key)
}

// Remember returns the cached value for key, or calls load, caches its
// result for ttl and returns it.
func Remember[T any](key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var out T
	if Get(key, &out) {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	_ = Set(key, out, ttl)
	return out, nil
}

// ─── Redis driver ─────────────────────────────────────────────────────────────

type redisDriver struct {
	rdb *redis.Client
}

func (d *redisDriver) Name() string { return "redis" }

func (d *redisDriver) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := d.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

func (d *redisDriver) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return d.rdb.Set(ctx, key, value, ttl).Err()
}

func (d *redisDriver) Del(ctx context.Context, keys ...string) error {
	return d.rdb.Del(ctx, keys...).Err()
}
