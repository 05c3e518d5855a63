package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/averdugo/inventario-be/internal/adapters/memory"
	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/services"
	"github.com/averdugo/inventario-be/internal/core/store"
	"github.com/averdugo/inventario-be/test/helpers"
)

func newBenchEngine() *services.InventarioService {
	logger := helpers.TestLogger()
	gateway := store.NewGateway(memory.NewStore(), logger)
	return services.NewInventarioService(
		store.NewMaterialStore(gateway, logger),
		store.NewMovimientoLedger(gateway, logger),
		logger,
	)
}

func BenchmarkInventarioOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("AddMaterial", func(b *testing.B) {
		engine := newBenchEngine()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = engine.AddMaterial(ctx, &domain.Material{
				Nombre: fmt.Sprintf("Material %d", i),
				Tipo:   "Eléctrico",
				Precio: decimal.NewFromFloat(10),
			})
		}
	})

	b.Run("GetMaterial", func(b *testing.B) {
		engine := newBenchEngine()
		for i := 0; i < 100; i++ {
			_ = engine.AddMaterial(ctx, &domain.Material{
				Nombre: fmt.Sprintf("Material %d", i),
				Precio: decimal.NewFromFloat(10),
			})
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = engine.GetMaterial(ctx, i%100+1)
		}
	})

	b.Run("AddMovimiento", func(b *testing.B) {
		engine := newBenchEngine()
		m := &domain.Material{Nombre: "Cable", Precio: decimal.NewFromFloat(10)}
		_ = engine.AddMaterial(ctx, m)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = engine.AddMovimiento(ctx, &domain.Movimiento{
				MaterialID: m.ID,
				Tipo:       domain.TipoEntrada,
				Cantidad:   decimal.NewFromInt(1),
				Precio:     decimal.NewFromFloat(12.5),
			})
		}
	})

	b.Run("ListMovimientosByMaterial", func(b *testing.B) {
		engine := newBenchEngine()
		m := &domain.Material{Nombre: "Cable", Precio: decimal.NewFromFloat(10)}
		_ = engine.AddMaterial(ctx, m)
		for i := 0; i < 500; i++ {
			_ = engine.AddMovimiento(ctx, &domain.Movimiento{
				MaterialID: m.ID,
				Tipo:       domain.TipoEntrada,
				Cantidad:   decimal.NewFromInt(1),
				Precio:     decimal.NewFromFloat(12.5),
			})
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = engine.ListMovimientosByMaterial(ctx, m.ID)
		}
	})
}

func BenchmarkSaveLoad(b *testing.B) {
	ctx := context.Background()
	logger := helpers.TestLogger()
	kv := memory.NewStore()
	gateway := store.NewGateway(kv, logger)
	materials := store.NewMaterialStore(gateway, logger)
	materials.Load(ctx)
	for i := 0; i < 1000; i++ {
		materials.Add(ctx, &domain.Material{
			Nombre: fmt.Sprintf("Material %d", i),
			Precio: decimal.NewFromFloat(10),
		})
	}

	b.Run("Save", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			materials.Save(ctx)
		}
	})

	b.Run("Load", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			materials.Load(ctx)
		}
	})
}
