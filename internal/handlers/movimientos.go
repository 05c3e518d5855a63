// internal/handlers/movimientos.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/ports"
)

// MovimientoHandler handles stock-movement HTTP requests
type MovimientoHandler struct {
	service ports.InventarioService
	logger  *slog.Logger
}

// NewMovimientoHandler creates a new movement handler
func NewMovimientoHandler(service ports.InventarioService, logger *slog.Logger) *MovimientoHandler {
	return &MovimientoHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "movimientos")),
	}
}

// ListMovimientos handles GET /api/v1/movimientos
func (h *MovimientoHandler) ListMovimientos(w http.ResponseWriter, r *http.Request) {
	movimientos := h.service.ListMovimientos(r.Context())

	response := make([]MovimientoResponse, 0, len(movimientos))
	for _, mv := range movimientos {
		response = append(response, toMovimientoResponse(mv))
	}

	respondJSON(w, h.logger, http.StatusOK, response)
}

// ListByMaterial handles GET /api/v1/materiales/{id}/movimientos
func (h *MovimientoHandler) ListByMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid material id")
		return
	}

	movimientos := h.service.ListMovimientosByMaterial(r.Context(), id)

	response := make([]MovimientoResponse, 0, len(movimientos))
	for _, mv := range movimientos {
		response = append(response, toMovimientoResponse(mv))
	}

	respondJSON(w, h.logger, http.StatusOK, response)
}

// CreateMovimiento handles POST /api/v1/movimientos. An entrada increases
// the material's stock and overwrites its unit price; a salida decreases
// stock and is rejected when it exceeds the stock on hand.
func (h *MovimientoHandler) CreateMovimiento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MovimientoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	movimiento := req.ToDomain()
	if err := h.service.AddMovimiento(ctx, movimiento); err != nil {
		switch {
		case errors.Is(err, domain.ErrMaterialNotFound):
			respondError(w, h.logger, http.StatusNotFound, "material not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			respondError(w, h.logger, http.StatusUnprocessableEntity,
				"insufficient stock for outbound movement")
		default:
			h.logger.ErrorContext(ctx, "failed to create movimiento",
				slog.String("error", err.Error()))
			respondError(w, h.logger, http.StatusInternalServerError, "failed to create movimiento")
		}
		return
	}

	h.logger.InfoContext(ctx, "movimiento created",
		slog.Int("id", movimiento.ID),
		slog.Int("material_id", movimiento.MaterialID),
		slog.String("tipo", movimiento.Tipo.String()))

	respondJSON(w, h.logger, http.StatusCreated, toMovimientoResponse(movimiento))
}

// DeleteMovimiento handles DELETE /api/v1/movimientos/{id}. Removing a
// movement reverses its effect on the referenced material's stock.
func (h *MovimientoHandler) DeleteMovimiento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid movimiento id")
		return
	}

	if err := h.service.DeleteMovimiento(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMovimientoNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "movimiento not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete movimiento",
			slog.Int("id", id),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to delete movimiento")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Request/Response DTOs

// MovimientoRequest represents the request body for recording a movement.
// Tipo accepts the persisted integer encoding: 0 entrada, 1 salida.
type MovimientoRequest struct {
	MaterialID    int             `json:"materialId"`
	Tipo          int             `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Precio        decimal.Decimal `json:"precio"`
	Observaciones string          `json:"observaciones"`
}

// Validate validates the movement request
func (r *MovimientoRequest) Validate() error {
	if r.MaterialID <= 0 {
		return fmt.Errorf("materialId is required")
	}
	if r.Tipo != int(domain.TipoEntrada) && r.Tipo != int(domain.TipoSalida) {
		return fmt.Errorf("tipo must be 0 (entrada) or 1 (salida)")
	}
	if !r.Cantidad.IsPositive() {
		return fmt.Errorf("cantidad must be positive")
	}
	if r.Precio.IsNegative() {
		return fmt.Errorf("precio cannot be negative")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *MovimientoRequest) ToDomain() *domain.Movimiento {
	return &domain.Movimiento{
		MaterialID:    r.MaterialID,
		Tipo:          domain.TipoMovimiento(r.Tipo),
		Cantidad:      r.Cantidad,
		Precio:        r.Precio,
		Observaciones: r.Observaciones,
	}
}

// MovimientoResponse is the API representation of a movement, including
// the derived total.
type MovimientoResponse struct {
	ID            int             `json:"id"`
	MaterialID    int             `json:"materialId"`
	Tipo          int             `json:"tipo"`
	TipoNombre    string          `json:"tipoNombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Precio        decimal.Decimal `json:"precio"`
	Total         decimal.Decimal `json:"total"`
	Observaciones string          `json:"observaciones"`
	Fecha         time.Time       `json:"fecha"`
}

func toMovimientoResponse(mv *domain.Movimiento) MovimientoResponse {
	return MovimientoResponse{
		ID:            mv.ID,
		MaterialID:    mv.MaterialID,
		Tipo:          int(mv.Tipo),
		TipoNombre:    mv.Tipo.String(),
		Cantidad:      mv.Cantidad,
		Precio:        mv.Precio,
		Total:         mv.Total(),
		Observaciones: mv.Observaciones,
		Fecha:         mv.Fecha,
	}
}
