// Package presets stores named currency formatting presets in Redis so a
// fleet of form frontends can share them.
package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/raaihank/maskform/internal/currency"
)

// ErrNotFound is returned when a preset name has no stored options.
var ErrNotFound = errors.New("preset not found")

// Config contains the preset store configuration.
type Config struct {
	RedisURL       string
	KeyPrefix      string
	TTL            time.Duration
	MaxConnections int
	MinIdleConns   int
}

// Store is a Redis-backed preset store with hit/miss counters.
type Store struct {
	client *redis.Client
	config *Config
	logger *zap.Logger

	hits   int64
	misses int64
}

// Stats is a snapshot of the store counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// NewStore connects to Redis and verifies the connection.
func NewStore(config *Config, logger *zap.Logger) (*Store, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.MaxConnections
	opts.MinIdleConns = config.MinIdleConns

	store := &Store{
		client: redis.NewClient(opts),
		config: config,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Preset store initialized",
		zap.String("redis_url", maskRedisURL(config.RedisURL)),
		zap.Int("max_connections", config.MaxConnections),
		zap.Duration("ttl", config.TTL),
	)

	return store, nil
}

// Get loads the options stored under name.
func (s *Store) Get(ctx context.Context, name string) (currency.Options, error) {
	data, err := s.client.Get(ctx, s.key(name)).Result()
	if err == redis.Nil {
		s.misses++
		return currency.Options{}, ErrNotFound
	} else if err != nil {
		return currency.Options{}, fmt.Errorf("preset lookup failed: %w", err)
	}

	var opts currency.Options
	if err := json.Unmarshal([]byte(data), &opts); err != nil {
		return currency.Options{}, fmt.Errorf("corrupt preset %q: %w", name, err)
	}

	s.hits++
	s.logger.Debug("Preset loaded", zap.String("preset", name))
	return opts, nil
}

// Put stores options under name with the configured TTL.
func (s *Store) Put(ctx context.Context, name string, opts currency.Options) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to encode preset %q: %w", name, err)
	}

	if err := s.client.Set(ctx, s.key(name), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store preset %q: %w", name, err)
	}

	s.logger.Info("Preset stored", zap.String("preset", name))
	return nil
}

// Delete removes the preset stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	removed, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	if removed == 0 {
		return ErrNotFound
	}

	s.logger.Info("Preset deleted", zap.String("preset", name))
	return nil
}

// Stats returns the hit/miss counters.
func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits, Misses: s.misses}
}

// Close releases the Redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(name string) string {
	return s.config.KeyPrefix + name
}

// maskRedisURL hides credentials embedded in a Redis URL before logging it.
func maskRedisURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
