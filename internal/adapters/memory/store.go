// internal/adapters/memory/store.go
package memory

import (
	"context"
	"sync"

	"github.com/averdugo/inventario-be/internal/core/ports"
)

// Store is an in-memory key-value store. It backs unit tests and the
// "memory" storage backend, where persisted state lives only as long as
// the process.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Get returns the value under key, or "" when absent.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
