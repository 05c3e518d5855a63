// internal/core/store/gateway.go
package store

import (
	"context"
	"log/slog"

	"github.com/averdugo/inventario-be/internal/core/ports"
)

// Gateway is the persistence boundary for the in-memory collections.
// Every storage fault is absorbed here: reads degrade to the empty string
// and writes become no-ops, both logged. The in-memory state remains
// authoritative for the rest of the session, so nothing past this point
// ever sees a storage error.
type Gateway struct {
	kv     ports.KeyValueStore
	logger *slog.Logger
}

// NewGateway creates a persistence gateway over the given key-value backend.
func NewGateway(kv ports.KeyValueStore, logger *slog.Logger) *Gateway {
	return &Gateway{
		kv:     kv,
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// Read returns the stored value for key, or "" when the key is absent or
// the backend fails.
func (g *Gateway) Read(ctx context.Context, key string) string {
	value, err := g.kv.Get(ctx, key)
	if err != nil {
		g.logger.ErrorContext(ctx, "storage read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return ""
	}
	return value
}

// Write persists value under key. A failed write leaves the previously
// persisted state stale; there is no retry.
func (g *Gateway) Write(ctx context.Context, key, value string) {
	if err := g.kv.Set(ctx, key, value); err != nil {
		g.logger.ErrorContext(ctx, "storage write failed",
			slog.String("key", key),
			slog.Int("bytes", len(value)),
			slog.String("error", err.Error()))
	}
}

// Ping reports whether the backend is reachable. Used by health checks only.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.kv.Ping(ctx)
}
