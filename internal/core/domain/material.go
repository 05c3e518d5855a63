// internal/core/domain/material.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted encoding uses plain JSON numbers for decimal fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Material represents a tracked inventory material. Cantidad is maintained
// exclusively by the inventory service as the net effect of the material's
// movement history and never goes negative.
type Material struct {
	ID                 int             `json:"id"`
	Nombre             string          `json:"nombre"`
	Tipo               string          `json:"tipo"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	Precio             decimal.Decimal `json:"precio"`
	FechaCreacion      time.Time       `json:"fechaCreacion"`
	FechaActualizacion time.Time       `json:"fechaActualizacion"`
}

// PrecioTotal returns the derived total value (Cantidad * Precio).
// It is computed on demand and never persisted.
func (m *Material) PrecioTotal() decimal.Decimal {
	return m.Cantidad.Mul(m.Precio)
}

// Validate performs domain validation on the material
func (m *Material) Validate() error {
	if m.Nombre == "" {
		return fmt.Errorf("nombre is required")
	}
	if m.Cantidad.IsNegative() {
		return fmt.Errorf("cantidad cannot be negative")
	}
	if m.Precio.IsNegative() {
		return fmt.Errorf("precio cannot be negative")
	}
	return nil
}

// Touch refreshes the modification timestamp.
func (m *Material) Touch() {
	m.FechaActualizacion = time.Now().UTC()
}
