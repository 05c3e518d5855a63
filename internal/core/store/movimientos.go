// internal/core/store/movimientos.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/averdugo/inventario-be/internal/core/domain"
)

// KeyMovimientos is the fixed storage key for the movement ledger.
const KeyMovimientos = "movements"

// MovimientoLedger owns the chronological movement ledger and its ID
// counter. It records and removes entries but enforces no business rules;
// the stock check belongs to the inventory service, which runs it before
// delegating here. Not safe for concurrent use.
type MovimientoLedger struct {
	gateway     *Gateway
	logger      *slog.Logger
	movimientos []*domain.Movimiento
	nextID      int
}

// NewMovimientoLedger creates a movement ledger backed by the given gateway.
func NewMovimientoLedger(gateway *Gateway, logger *slog.Logger) *MovimientoLedger {
	return &MovimientoLedger{
		gateway: gateway,
		logger:  logger.With(slog.String("store", "movimientos")),
		nextID:  1,
	}
}

// Load replaces the ledger with the persisted one, with the same
// empty-on-error policy and ID recomputation as the material store.
func (l *MovimientoLedger) Load(ctx context.Context) {
	l.movimientos = nil
	l.nextID = 1

	raw := l.gateway.Read(ctx, KeyMovimientos)
	if raw == "" {
		return
	}

	var movimientos []*domain.Movimiento
	if err := json.Unmarshal([]byte(raw), &movimientos); err != nil {
		l.logger.WarnContext(ctx, "discarding malformed movement payload",
			slog.String("error", err.Error()))
		return
	}

	l.movimientos = movimientos
	for _, mv := range l.movimientos {
		if mv.ID >= l.nextID {
			l.nextID = mv.ID + 1
		}
	}

	l.logger.DebugContext(ctx, "movements loaded",
		slog.Int("count", len(l.movimientos)),
		slog.Int("next_id", l.nextID))
}

// Save serializes the ledger and writes it through the gateway.
func (l *MovimientoLedger) Save(ctx context.Context) {
	data, err := json.MarshalIndent(l.movimientos, "", "  ")
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to serialize movements",
			slog.String("error", err.Error()))
		return
	}
	l.gateway.Write(ctx, KeyMovimientos, string(data))
}

// Add assigns the next ID and the current timestamp, appends and persists.
func (l *MovimientoLedger) Add(ctx context.Context, mv *domain.Movimiento) {
	mv.ID = l.nextID
	l.nextID++
	mv.Fecha = time.Now().UTC()

	l.movimientos = append(l.movimientos, mv)
	l.Save(ctx)
}

// Remove deletes the movement with the given ID and persists.
func (l *MovimientoLedger) Remove(ctx context.Context, id int) error {
	for i, mv := range l.movimientos {
		if mv.ID == id {
			l.movimientos = append(l.movimientos[:i], l.movimientos[i+1:]...)
			l.Save(ctx)
			return nil
		}
	}
	return fmt.Errorf("remove movimiento %d: %w", id, domain.ErrMovimientoNotFound)
}

// RemoveByMaterial deletes every movement referencing materialID and
// persists once. Used by the material cascade delete.
func (l *MovimientoLedger) RemoveByMaterial(ctx context.Context, materialID int) int {
	kept := l.movimientos[:0]
	removed := 0
	for _, mv := range l.movimientos {
		if mv.MaterialID == materialID {
			removed++
			continue
		}
		kept = append(kept, mv)
	}
	l.movimientos = kept

	if removed > 0 {
		l.Save(ctx)
	}
	return removed
}

// Get returns the movement with the given ID, or nil. Live reference.
func (l *MovimientoLedger) Get(id int) *domain.Movimiento {
	for _, mv := range l.movimientos {
		if mv.ID == id {
			return mv
		}
	}
	return nil
}

// List returns the full ledger in insertion order. Live references.
func (l *MovimientoLedger) List() []*domain.Movimiento {
	return l.movimientos
}

// ListByMaterial returns the movements referencing materialID in
// insertion order.
func (l *MovimientoLedger) ListByMaterial(materialID int) []*domain.Movimiento {
	result := make([]*domain.Movimiento, 0)
	for _, mv := range l.movimientos {
		if mv.MaterialID == materialID {
			result = append(result, mv)
		}
	}
	return result
}
