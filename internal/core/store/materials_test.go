// internal/core/store/materials_test.go
package store_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averdugo/inventario-be/internal/adapters/memory"
	"github.com/averdugo/inventario-be/internal/core/store"
	"github.com/averdugo/inventario-be/test/helpers"
)

func newMaterialStore(t *testing.T) (*store.MaterialStore, *memory.Store, *slog.Logger) {
	t.Helper()
	kv := memory.NewStore()
	logger := helpers.TestLogger()
	return store.NewMaterialStore(store.NewGateway(kv, logger), logger), kv, logger
}

func TestMaterialStore_RoundTrip(t *testing.T) {
	materials, kv, logger := newMaterialStore(t)
	ctx := context.Background()

	materials.Load(ctx)
	materials.Add(ctx, helpers.CreateTestMaterial())
	materials.Add(ctx, helpers.CreateTestMaterial())

	reloaded := store.NewMaterialStore(store.NewGateway(kv, logger), logger)
	reloaded.Load(ctx)

	require.Len(t, reloaded.List(), 2)
	assert.Equal(t, 1, reloaded.List()[0].ID)
	assert.Equal(t, "Cable THW 12 AWG", reloaded.List()[0].Nombre)
}

func TestMaterialStore_LoadMalformedPayload(t *testing.T) {
	materials, kv, _ := newMaterialStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyMaterials, `{not json`))
	materials.Load(ctx)

	assert.Empty(t, materials.List())

	// The store still works after discarding the payload.
	m := helpers.CreateTestMaterial()
	materials.Add(ctx, m)
	assert.Equal(t, 1, m.ID)
}

func TestMaterialStore_LoadCaseInsensitiveFields(t *testing.T) {
	materials, kv, _ := newMaterialStore(t)
	ctx := context.Background()

	payload := `[{"Id":4,"NOMBRE":"Cemento","tipo":"Construcción","Cantidad":50,"PRECIO":8.75}]`
	require.NoError(t, kv.Set(ctx, store.KeyMaterials, payload))
	materials.Load(ctx)

	require.Len(t, materials.List(), 1)
	got := materials.Get(4)
	require.NotNil(t, got)
	assert.Equal(t, "Cemento", got.Nombre)
	assert.True(t, got.Precio.Equal(decimal.NewFromFloat(8.75)))
}

func TestMaterialStore_NextIDRecomputedFromMax(t *testing.T) {
	materials, kv, _ := newMaterialStore(t)
	ctx := context.Background()

	payload := `[{"id":2,"nombre":"A"},{"id":9,"nombre":"B"},{"id":5,"nombre":"C"}]`
	require.NoError(t, kv.Set(ctx, store.KeyMaterials, payload))
	materials.Load(ctx)

	m := helpers.CreateTestMaterial()
	materials.Add(ctx, m)
	assert.Equal(t, 10, m.ID)
}

func TestMaterialStore_RemoveMissing(t *testing.T) {
	materials, _, _ := newMaterialStore(t)
	ctx := context.Background()

	materials.Load(ctx)
	err := materials.Remove(ctx, 3)
	require.Error(t, err)
}
