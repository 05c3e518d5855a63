// internal/core/store/materials.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/averdugo/inventario-be/internal/core/domain"
)

// KeyMaterials is the fixed storage key for the material collection.
const KeyMaterials = "materials"

// MaterialStore owns the ordered in-memory material collection and its
// monotonic ID counter, and mirrors the collection to the gateway.
// It is not safe for concurrent use; the inventory service serializes
// access to it.
type MaterialStore struct {
	gateway   *Gateway
	logger    *slog.Logger
	materials []*domain.Material
	nextID    int
}

// NewMaterialStore creates a material store backed by the given gateway.
func NewMaterialStore(gateway *Gateway, logger *slog.Logger) *MaterialStore {
	return &MaterialStore{
		gateway: gateway,
		logger:  logger.With(slog.String("store", "materials")),
		nextID:  1,
	}
}

// Load replaces the collection with the persisted one. An empty or
// malformed payload resets to an empty collection; the ID counter is
// recomputed as max(id)+1 so deleted IDs are never reused across sessions.
func (s *MaterialStore) Load(ctx context.Context) {
	s.materials = nil
	s.nextID = 1

	raw := s.gateway.Read(ctx, KeyMaterials)
	if raw == "" {
		return
	}

	var materials []*domain.Material
	if err := json.Unmarshal([]byte(raw), &materials); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed material payload",
			slog.String("error", err.Error()))
		return
	}

	s.materials = materials
	for _, m := range s.materials {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}

	s.logger.DebugContext(ctx, "materials loaded",
		slog.Int("count", len(s.materials)),
		slog.Int("next_id", s.nextID))
}

// Save serializes the collection and writes it through the gateway.
func (s *MaterialStore) Save(ctx context.Context) {
	data, err := json.MarshalIndent(s.materials, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to serialize materials",
			slog.String("error", err.Error()))
		return
	}
	s.gateway.Write(ctx, KeyMaterials, string(data))
}

// Add assigns the next ID and both timestamps, appends and persists.
func (s *MaterialStore) Add(ctx context.Context, m *domain.Material) {
	now := time.Now().UTC()
	m.ID = s.nextID
	s.nextID++
	m.FechaCreacion = now
	m.FechaActualizacion = now

	s.materials = append(s.materials, m)
	s.Save(ctx)
}

// Update copies the mutable fields onto the stored record and persists.
func (s *MaterialStore) Update(ctx context.Context, m *domain.Material) error {
	existing := s.Get(m.ID)
	if existing == nil {
		return fmt.Errorf("update material %d: %w", m.ID, domain.ErrMaterialNotFound)
	}

	existing.Nombre = m.Nombre
	existing.Tipo = m.Tipo
	existing.Cantidad = m.Cantidad
	existing.Precio = m.Precio
	existing.Touch()

	s.Save(ctx)
	return nil
}

// Remove deletes the material with the given ID and persists.
func (s *MaterialStore) Remove(ctx context.Context, id int) error {
	for i, m := range s.materials {
		if m.ID == id {
			s.materials = append(s.materials[:i], s.materials[i+1:]...)
			s.Save(ctx)
			return nil
		}
	}
	return fmt.Errorf("remove material %d: %w", id, domain.ErrMaterialNotFound)
}

// Get returns the material with the given ID, or nil. Live reference.
func (s *MaterialStore) Get(id int) *domain.Material {
	for _, m := range s.materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// List returns the full collection in insertion order. Live references.
func (s *MaterialStore) List() []*domain.Material {
	return s.materials
}
