package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averdugo/inventario-be/internal/core/domain"
)

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name      string
		material  *domain.Material
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_material",
			material: &domain.Material{
				Nombre:   "Cable",
				Tipo:     "Eléctrico",
				Cantidad: decimal.NewFromInt(10),
				Precio:   decimal.NewFromFloat(12.5),
			},
			wantError: false,
		},
		{
			name: "missing_nombre",
			material: &domain.Material{
				Tipo:   "Eléctrico",
				Precio: decimal.NewFromFloat(12.5),
			},
			wantError: true,
			errorMsg:  "nombre is required",
		},
		{
			name: "negative_cantidad",
			material: &domain.Material{
				Nombre:   "Cable",
				Cantidad: decimal.NewFromInt(-1),
			},
			wantError: true,
			errorMsg:  "cantidad cannot be negative",
		},
		{
			name: "negative_precio",
			material: &domain.Material{
				Nombre: "Cable",
				Precio: decimal.NewFromFloat(-0.01),
			},
			wantError: true,
			errorMsg:  "precio cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMaterial_PrecioTotal(t *testing.T) {
	m := &domain.Material{
		Nombre:   "Cable",
		Cantidad: decimal.NewFromInt(20),
		Precio:   decimal.NewFromFloat(12.5),
	}

	assert.True(t, m.PrecioTotal().Equal(decimal.NewFromFloat(250.0)),
		"expected 250, got %s", m.PrecioTotal())
}

func TestMaterial_JSONFieldNames(t *testing.T) {
	m := &domain.Material{
		ID:       1,
		Nombre:   "Cable",
		Tipo:     "Eléctrico",
		Cantidad: decimal.NewFromInt(5),
		Precio:   decimal.NewFromFloat(2.5),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"id", "nombre", "tipo", "cantidad", "precio", "fechaCreacion", "fechaActualizacion"} {
		assert.Contains(t, fields, key)
	}
	// Derived value is never persisted.
	assert.NotContains(t, fields, "precioTotal")
	// Decimals are encoded as plain JSON numbers.
	assert.Equal(t, "5", string(fields["cantidad"]))
	assert.Equal(t, "2.5", string(fields["precio"]))
}

func TestMaterial_CaseInsensitiveLoad(t *testing.T) {
	payload := `{"Id":3,"NOMBRE":"Tubo","Tipo":"Plomería","CANTIDAD":7,"Precio":1.25}`

	var m domain.Material
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, 3, m.ID)
	assert.Equal(t, "Tubo", m.Nombre)
	assert.True(t, m.Cantidad.Equal(decimal.NewFromInt(7)))
}
