package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

const (
	// DefaultMaxAge is the acceptance window advertised with every request.
	DefaultMaxAge = 60 * time.Second

	// DefaultStaleTTL is how long a stale entry is kept for revalidation.
	DefaultStaleTTL = 24 * time.Hour
)

// Config holds cache manager configuration.
type Config struct {
	// MaxAge is how long a stored response is served without revalidation.
	MaxAge time.Duration

	// StaleTTL is how long an entry outlives its acceptance window.
	StaleTTL time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxAge:   DefaultMaxAge,
		StaleTTL: DefaultStaleTTL,
	}
}

// Manager handles caching operations with Redis backend.
type Manager struct {
	redis  *redis.Client
	config Config
}

// NewManager creates a new cache manager with Redis backend.
func NewManager(redisClient *redis.Client, cfg Config) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.StaleTTL < 0 {
		cfg.StaleTTL = 0
	}
	return &Manager{
		redis:  redisClient,
		config: cfg,
	}
}

// MaxAge returns the acceptance window.
func (m *Manager) MaxAge() time.Duration {
	return m.config.MaxAge
}

// Get retrieves a cache entry by key. Stale entries are returned too; the
// caller decides between serving (IsFresh) and revalidating.
// Returns ErrCacheMiss if the key doesn't exist.
func (m *Manager) Get(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	cacheKey := key.String()

	data, err := m.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		_ = m.Delete(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if entry.IsFresh() {
		CacheHits.WithLabelValues("redis").Inc()
	}

	return &entry, nil
}

// Set stores a cache entry. A zero FreshUntil is filled in from MaxAge.
// Redis evicts the entry StaleTTL after it becomes stale.
func (m *Manager) Set(ctx context.Context, key CacheKey, entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}
	if entry.FreshUntil.IsZero() {
		entry.FreshUntil = entry.CachedAt.Add(m.config.MaxAge)
	}

	ttl := entry.TTL() + m.config.StaleTTL
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := m.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	CacheSize.WithLabelValues("redis").Set(float64(len(data)))

	return nil
}

// Touch restarts an entry's acceptance window and stores it again.
// This is used after a 304 Not Modified response.
func (m *Manager) Touch(ctx context.Context, key CacheKey, entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}
	entry.Refresh(m.config.MaxAge)
	return m.Set(ctx, key, entry)
}

// Delete removes a cache entry.
func (m *Manager) Delete(ctx context.Context, key CacheKey) error {
	if err := m.redis.Del(ctx, key.String()).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
