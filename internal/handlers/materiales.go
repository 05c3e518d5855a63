// internal/handlers/materiales.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/ports"
)

// MaterialHandler handles material-related HTTP requests
type MaterialHandler struct {
	service ports.InventarioService
	logger  *slog.Logger
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(service ports.InventarioService, logger *slog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "materiales")),
	}
}

// ListMateriales handles GET /api/v1/materiales
func (h *MaterialHandler) ListMateriales(w http.ResponseWriter, r *http.Request) {
	materials := h.service.ListMaterials(r.Context())

	response := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		response = append(response, toMaterialResponse(m))
	}

	respondJSON(w, h.logger, http.StatusOK, response)
}

// GetMaterial handles GET /api/v1/materiales/{id}
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid material id")
		return
	}

	material, err := h.service.GetMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMaterialNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "material not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get material",
			slog.Int("id", id),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to retrieve material")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toMaterialResponse(material))
}

// CreateMaterial handles POST /api/v1/materiales
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	material := req.ToDomain()
	if err := h.service.AddMaterial(ctx, material); err != nil {
		h.logger.ErrorContext(ctx, "failed to create material",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to create material")
		return
	}

	h.logger.InfoContext(ctx, "material created",
		slog.Int("id", material.ID),
		slog.String("nombre", material.Nombre))

	respondJSON(w, h.logger, http.StatusCreated, toMaterialResponse(material))
}

// UpdateMaterial handles PUT /api/v1/materiales/{id}
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid material id")
		return
	}

	var req MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	material := req.ToDomain()
	material.ID = id

	if err := h.service.UpdateMaterial(ctx, material); err != nil {
		if errors.Is(err, domain.ErrMaterialNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "material not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update material",
			slog.Int("id", id),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to update material")
		return
	}

	updated, err := h.service.GetMaterial(ctx, id)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "failed to retrieve updated material")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toMaterialResponse(updated))
}

// DeleteMaterial handles DELETE /api/v1/materiales/{id}. Deleting a
// material also deletes every movement referencing it.
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid material id")
		return
	}

	if err := h.service.DeleteMaterial(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMaterialNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "material not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete material",
			slog.Int("id", id),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to delete material")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Request/Response DTOs

// MaterialRequest represents the request body for creating or updating a
// material.
type MaterialRequest struct {
	Nombre   string          `json:"nombre"`
	Tipo     string          `json:"tipo"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
}

// Validate validates the material request
func (r *MaterialRequest) Validate() error {
	if r.Nombre == "" {
		return fmt.Errorf("nombre is required")
	}
	if r.Cantidad.IsNegative() {
		return fmt.Errorf("cantidad cannot be negative")
	}
	if r.Precio.IsNegative() {
		return fmt.Errorf("precio cannot be negative")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *MaterialRequest) ToDomain() *domain.Material {
	return &domain.Material{
		Nombre:   r.Nombre,
		Tipo:     r.Tipo,
		Cantidad: r.Cantidad,
		Precio:   r.Precio,
	}
}

// MaterialResponse is the API representation of a material, including the
// derived total value.
type MaterialResponse struct {
	ID                 int             `json:"id"`
	Nombre             string          `json:"nombre"`
	Tipo               string          `json:"tipo"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	Precio             decimal.Decimal `json:"precio"`
	PrecioTotal        decimal.Decimal `json:"precioTotal"`
	FechaCreacion      time.Time       `json:"fechaCreacion"`
	FechaActualizacion time.Time       `json:"fechaActualizacion"`
}

func toMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:                 m.ID,
		Nombre:             m.Nombre,
		Tipo:               m.Tipo,
		Cantidad:           m.Cantidad,
		Precio:             m.Precio,
		PrecioTotal:        m.PrecioTotal(),
		FechaCreacion:      m.FechaCreacion,
		FechaActualizacion: m.FechaActualizacion,
	}
}

// Shared helpers

func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
