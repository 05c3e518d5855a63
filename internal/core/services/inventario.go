// internal/core/services/inventario.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/ports"
	"github.com/averdugo/inventario-be/internal/core/store"
)

// InventarioService orchestrates the material store and the movement
// ledger. It is the only writer of both collections and enforces the one
// cross-collection rule: a material's quantity always equals the net
// effect of its movement history.
//
// Initialization is lazy and exactly-once: the first public call loads
// both collections behind a sync.Once, so concurrent first calls cannot
// double-load. A mutex serializes all operations, which makes the
// check-then-mutate sequences and the cascade delete atomic with respect
// to callers.
type InventarioService struct {
	materials *store.MaterialStore
	ledger    *store.MovimientoLedger
	logger    *slog.Logger

	initOnce sync.Once
	mu       sync.Mutex
}

// Statically assert that *InventarioService implements the service port.
var _ ports.InventarioService = (*InventarioService)(nil)

// NewInventarioService creates the inventory engine with injected stores.
func NewInventarioService(materials *store.MaterialStore, ledger *store.MovimientoLedger, logger *slog.Logger) *InventarioService {
	return &InventarioService{
		materials: materials,
		ledger:    ledger,
		logger:    logger.With(slog.String("service", "inventario")),
	}
}

// Initialize loads both collections from storage. It runs at most once
// per process; later calls are no-ops. Load faults are absorbed by the
// stores, so the engine always comes up, possibly with partial state.
func (s *InventarioService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.materials.Load(ctx)
		s.ledger.Load(ctx)
		s.logger.InfoContext(ctx, "inventory engine initialized",
			slog.Int("materials", len(s.materials.List())),
			slog.Int("movimientos", len(s.ledger.List())))
	})
}

// ListMaterials returns the full material collection in insertion order.
// The returned records are live; mutations must go through this service.
func (s *InventarioService) ListMaterials(ctx context.Context) []*domain.Material {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials.List()
}

// GetMaterial returns the material with the given ID.
func (s *InventarioService) GetMaterial(ctx context.Context, id int) (*domain.Material, error) {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.materials.Get(id)
	if m == nil {
		return nil, fmt.Errorf("material %d: %w", id, domain.ErrMaterialNotFound)
	}
	return m, nil
}

// AddMaterial stores a new material, assigning its ID and timestamps in
// place.
func (s *InventarioService) AddMaterial(ctx context.Context, m *domain.Material) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.materials.Add(ctx, m)

	s.logger.InfoContext(ctx, "material added",
		slog.Int("id", m.ID),
		slog.String("nombre", m.Nombre))
	return nil
}

// UpdateMaterial overwrites the mutable fields of the stored material
// identified by m.ID.
func (s *InventarioService) UpdateMaterial(ctx context.Context, m *domain.Material) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.materials.Update(ctx, m); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "material updated", slog.Int("id", m.ID))
	return nil
}

// DeleteMaterial removes a material and cascades removal of every movement
// referencing it. Both collections are persisted; no other operation can
// observe the intermediate state.
func (s *InventarioService) DeleteMaterial(ctx context.Context, id int) error {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.materials.Remove(ctx, id); err != nil {
		return err
	}
	removed := s.ledger.RemoveByMaterial(ctx, id)

	s.logger.InfoContext(ctx, "material deleted",
		slog.Int("id", id),
		slog.Int("cascaded_movimientos", removed))
	return nil
}

// ListMovimientos returns the full ledger in insertion order.
func (s *InventarioService) ListMovimientos(ctx context.Context) []*domain.Movimiento {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.List()
}

// ListMovimientosByMaterial returns the movements referencing materialID.
func (s *InventarioService) ListMovimientosByMaterial(ctx context.Context, materialID int) []*domain.Movimiento {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ListByMaterial(materialID)
}

// AddMovimiento records a stock movement and applies its effect to the
// referenced material as one unit. Entrada adds the quantity and overwrites
// the material's unit price with the movement's; salida subtracts and
// leaves the price untouched. If the referenced material is missing or
// the stock check fails, nothing is mutated and nothing is persisted.
func (s *InventarioService) AddMovimiento(ctx context.Context, mv *domain.Movimiento) error {
	if err := mv.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	material := s.materials.Get(mv.MaterialID)
	if material == nil {
		return fmt.Errorf("movimiento references material %d: %w",
			mv.MaterialID, domain.ErrMaterialNotFound)
	}

	switch mv.Tipo {
	case domain.TipoEntrada:
		material.Cantidad = material.Cantidad.Add(mv.Cantidad)
		material.Precio = mv.Precio
	case domain.TipoSalida:
		if material.Cantidad.LessThan(mv.Cantidad) {
			return fmt.Errorf("salida of %s from material %d with stock %s: %w",
				mv.Cantidad, material.ID, material.Cantidad, domain.ErrInsufficientStock)
		}
		material.Cantidad = material.Cantidad.Sub(mv.Cantidad)
	}
	material.Touch()

	s.ledger.Add(ctx, mv)
	s.materials.Save(ctx)

	s.logger.InfoContext(ctx, "movimiento recorded",
		slog.Int("id", mv.ID),
		slog.Int("material_id", mv.MaterialID),
		slog.String("tipo", mv.Tipo.String()),
		slog.String("cantidad", mv.Cantidad.String()))
	return nil
}

// DeleteMovimiento removes a ledger entry and reverses its effect on the
// referenced material. If the material was already deleted the reversal is
// skipped (its state was cascaded away) but the entry is still removed.
func (s *InventarioService) DeleteMovimiento(ctx context.Context, id int) error {
	s.Initialize(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	mv := s.ledger.Get(id)
	if mv == nil {
		return fmt.Errorf("movimiento %d: %w", id, domain.ErrMovimientoNotFound)
	}

	if material := s.materials.Get(mv.MaterialID); material != nil {
		switch mv.Tipo {
		case domain.TipoEntrada:
			material.Cantidad = material.Cantidad.Sub(mv.Cantidad)
		case domain.TipoSalida:
			material.Cantidad = material.Cantidad.Add(mv.Cantidad)
		}
		material.Touch()
		s.materials.Save(ctx)
	}

	if err := s.ledger.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "movimiento deleted",
		slog.Int("id", id),
		slog.Int("material_id", mv.MaterialID))
	return nil
}
