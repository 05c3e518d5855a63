// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/averdugo/inventario-be/internal/core/store"
)

// HealthHandler reports process and storage health.
type HealthHandler struct {
	gateway   *store.Gateway
	version   string
	startedAt time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gateway *store.Gateway, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		gateway:   gateway,
		version:   version,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("handler", "health")),
	}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health handles GET /health. Liveness only; storage is not consulted
// because the engine stays usable with a degraded store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, HealthStatus{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Readiness handles GET /ready and pings the key-value backend.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Checks:  map[string]string{"storage": "ok"},
	}
	code := http.StatusOK

	if err := h.gateway.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "storage not reachable",
			slog.String("error", err.Error()))
		status.Status = "degraded"
		status.Checks["storage"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, h.logger, code, status)
}
