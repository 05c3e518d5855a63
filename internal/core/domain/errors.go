// internal/core/domain/errors.go
package domain

import "errors"

// Business-rule errors. Callers branch with errors.Is; storage faults are
// handled at the persistence boundary and never surface through these.
var (
	// ErrMaterialNotFound is returned when an operation references a
	// material that is not in the store.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrMovimientoNotFound is returned when deleting a movement that is
	// not in the ledger.
	ErrMovimientoNotFound = errors.New("movimiento not found")

	// ErrInsufficientStock is returned when an outbound movement would
	// drive a material's quantity negative. No mutation occurs.
	ErrInsufficientStock = errors.New("insufficient stock for outbound movement")
)
