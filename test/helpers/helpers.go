// test/helpers/helpers.go
package helpers

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/averdugo/inventario-be/internal/adapters/memory"
	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/services"
	"github.com/averdugo/inventario-be/internal/core/store"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// NewTestEngine wires an inventory engine over a fresh in-memory
// key-value store and returns both.
func NewTestEngine(t *testing.T) (*services.InventarioService, *memory.Store) {
	t.Helper()

	kv := memory.NewStore()
	logger := TestLogger()
	gateway := store.NewGateway(kv, logger)

	engine := services.NewInventarioService(
		store.NewMaterialStore(gateway, logger),
		store.NewMovimientoLedger(gateway, logger),
		logger,
	)
	return engine, kv
}

// CreateTestMaterial builds a valid material draft, optionally modified
// by the given functions.
func CreateTestMaterial(modifiers ...func(*domain.Material)) *domain.Material {
	m := &domain.Material{
		Nombre:   "Cable THW 12 AWG",
		Tipo:     "Eléctrico",
		Cantidad: decimal.Zero,
		Precio:   decimal.NewFromFloat(10.0),
	}
	for _, modify := range modifiers {
		modify(m)
	}
	return m
}

// CreateTestMovimiento builds a valid inbound movement draft for the
// given material, optionally modified by the given functions.
func CreateTestMovimiento(materialID int, modifiers ...func(*domain.Movimiento)) *domain.Movimiento {
	mv := &domain.Movimiento{
		MaterialID:    materialID,
		Tipo:          domain.TipoEntrada,
		Cantidad:      decimal.NewFromInt(20),
		Precio:        decimal.NewFromFloat(12.5),
		Observaciones: "compra de prueba",
	}
	for _, modify := range modifiers {
		modify(mv)
	}
	return mv
}
