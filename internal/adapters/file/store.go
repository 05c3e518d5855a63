// internal/adapters/file/store.go
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/averdugo/inventario-be/internal/core/ports"
)

// Store is a filesystem-backed key-value store: one file per key inside a
// data directory. Writes go through a temp file and rename so a crash
// mid-write never leaves a truncated payload behind.
type Store struct {
	dir    string
	logger *slog.Logger
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates a file-backed store rooted at dir, creating it if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("adapter", "file"), slog.String("dir", dir)),
	}, nil
}

// Get reads the file for key. A missing file is ("", nil).
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.DebugContext(ctx, "key absent", slog.String("key", key))
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes value to the file for key atomically.
func (s *Store) Set(ctx context.Context, key, value string) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "key written",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Ping verifies the data directory is still accessible.
func (s *Store) Ping(context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
