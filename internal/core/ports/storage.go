// internal/core/ports/storage.go
package ports

import "context"

// KeyValueStore is the storage port the persistence gateway talks to.
// Implementations exist for Redis, S3, the local filesystem, and an
// in-memory map used by tests.
//
// Get returns ("", nil) when the key is absent; absence is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Ping(ctx context.Context) error
}
