// internal/adapters/redis_adapter/store.go
package redis_a

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/averdugo/inventario-be/internal/core/ports"
)

// Store implements the key-value storage port on Redis. Collection
// payloads are plain strings under fixed keys with no TTL; the gateway
// above decides what a failed read or write means.
type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// Statically assert that *Store implements the KeyValueStore port.
var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates a Redis-backed key-value store. The prefix namespaces
// the fixed collection keys so several deployments can share a database.
func NewStore(client *redis.Client, prefix string, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("adapter", "redis")),
	}
}

// Get retrieves the value under key. A missing key is ("", nil).
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			s.logger.DebugContext(ctx, "key absent", slog.String("key", key))
			return "", nil
		}
		return "", fmt.Errorf("redis get error: %w", err)
	}
	return value, nil
}

// Set stores value under key with no expiration.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.buildKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	s.logger.DebugContext(ctx, "key written",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Ping checks if Redis is accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func (s *Store) buildKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
