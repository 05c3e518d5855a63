// internal/core/ports/inventario.go
package ports

import (
	"context"

	"github.com/averdugo/inventario-be/internal/core/domain"
)

// InventarioService defines the application service port for the inventory
// engine. This interface is implemented by the application service and
// consumed by the HTTP handlers and the seeder.
//
// List operations hand out live references; callers must route every
// mutation through this port rather than writing to the returned values.
type InventarioService interface {
	Initialize(ctx context.Context)

	ListMaterials(ctx context.Context) []*domain.Material
	GetMaterial(ctx context.Context, id int) (*domain.Material, error)
	AddMaterial(ctx context.Context, m *domain.Material) error
	UpdateMaterial(ctx context.Context, m *domain.Material) error
	DeleteMaterial(ctx context.Context, id int) error

	ListMovimientos(ctx context.Context) []*domain.Movimiento
	ListMovimientosByMaterial(ctx context.Context, materialID int) []*domain.Movimiento
	AddMovimiento(ctx context.Context, mv *domain.Movimiento) error
	DeleteMovimiento(ctx context.Context, id int) error
}
