// internal/core/domain/movimiento.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimiento represents the direction of a stock movement.
// Persisted as an integer: 0 = entrada (inbound), 1 = salida (outbound).
type TipoMovimiento int

const (
	TipoEntrada TipoMovimiento = 0
	TipoSalida  TipoMovimiento = 1
)

// String implements fmt.Stringer for logging.
func (t TipoMovimiento) String() string {
	switch t {
	case TipoEntrada:
		return "entrada"
	case TipoSalida:
		return "salida"
	default:
		return fmt.Sprintf("TipoMovimiento(%d)", int(t))
	}
}

// Movimiento is one entry in the chronological stock ledger. Movements are
// append-only except for explicit deletion, which reverses their effect on
// the referenced material.
type Movimiento struct {
	ID            int             `json:"id"`
	MaterialID    int             `json:"materialId"`
	Tipo          TipoMovimiento  `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Precio        decimal.Decimal `json:"precio"`
	Observaciones string          `json:"observaciones"`
	Fecha         time.Time       `json:"fecha"`
}

// Total returns the derived movement value (Cantidad * Precio). Not persisted.
func (m *Movimiento) Total() decimal.Decimal {
	return m.Cantidad.Mul(m.Precio)
}

// Validate performs domain validation on the movement
func (m *Movimiento) Validate() error {
	if m.MaterialID <= 0 {
		return fmt.Errorf("materialId is required")
	}
	if m.Tipo != TipoEntrada && m.Tipo != TipoSalida {
		return fmt.Errorf("tipo must be entrada (0) or salida (1)")
	}
	if !m.Cantidad.IsPositive() {
		return fmt.Errorf("cantidad must be positive")
	}
	if m.Precio.IsNegative() {
		return fmt.Errorf("precio cannot be negative")
	}
	return nil
}
