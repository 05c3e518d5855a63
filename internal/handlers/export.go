// internal/handlers/export.go
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/ports"
)

// ExportHandler produces Excel and JSON snapshots of the inventory.
type ExportHandler struct {
	service ports.InventarioService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.InventarioService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Materiales  []MaterialResponse   `json:"materiales"`
	Movimientos []MovimientoResponse `json:"movimientos"`
	Metadata    ExportMetadata       `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate       time.Time `json:"export_date"`
	TotalMateriales  int       `json:"total_materiales"`
	TotalMovimientos int       `json:"total_movimientos"`
}

// ExportExcel handles GET /api/v1/export/excel. The workbook carries one
// sheet per collection.
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	materials := h.service.ListMaterials(ctx)
	movimientos := h.service.ListMovimientos(ctx)

	data, err := h.generateExcelFile(materials, movimientos)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate excel file",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "failed to generate excel file")
		return
	}

	filename := fmt.Sprintf("inventario_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "excel export completed",
		slog.Int("materiales", len(materials)),
		slog.Int("movimientos", len(movimientos)),
		slog.String("filename", filename))
}

// ExportJSON handles GET /api/v1/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	materials := h.service.ListMaterials(ctx)
	movimientos := h.service.ListMovimientos(ctx)

	response := JSONExportResponse{
		Materiales:  make([]MaterialResponse, 0, len(materials)),
		Movimientos: make([]MovimientoResponse, 0, len(movimientos)),
		Metadata: ExportMetadata{
			ExportDate:       time.Now().UTC(),
			TotalMateriales:  len(materials),
			TotalMovimientos: len(movimientos),
		},
	}
	for _, m := range materials {
		response.Materiales = append(response.Materiales, toMaterialResponse(m))
	}
	for _, mv := range movimientos {
		response.Movimientos = append(response.Movimientos, toMovimientoResponse(mv))
	}

	respondJSON(w, h.logger, http.StatusOK, response)

	h.logger.InfoContext(ctx, "json export completed",
		slog.Int("materiales", len(materials)),
		slog.Int("movimientos", len(movimientos)))
}

func (h *ExportHandler) generateExcelFile(materials []*domain.Material, movimientos []*domain.Movimiento) ([]byte, error) {
	file := xlsx.NewFile()

	matSheet, err := file.AddSheet("Materiales")
	if err != nil {
		return nil, fmt.Errorf("failed to add materials sheet: %w", err)
	}

	header := matSheet.AddRow()
	for _, title := range []string{"ID", "Nombre", "Tipo", "Cantidad", "Precio", "Precio Total", "Creado", "Actualizado"} {
		header.AddCell().SetString(title)
	}

	for _, m := range materials {
		row := matSheet.AddRow()
		row.AddCell().SetInt(m.ID)
		row.AddCell().SetString(m.Nombre)
		row.AddCell().SetString(m.Tipo)
		row.AddCell().SetString(m.Cantidad.String())
		row.AddCell().SetString(m.Precio.String())
		row.AddCell().SetString(m.PrecioTotal().String())
		row.AddCell().SetString(m.FechaCreacion.Format(time.RFC3339))
		row.AddCell().SetString(m.FechaActualizacion.Format(time.RFC3339))
	}

	movSheet, err := file.AddSheet("Movimientos")
	if err != nil {
		return nil, fmt.Errorf("failed to add movements sheet: %w", err)
	}

	header = movSheet.AddRow()
	for _, title := range []string{"ID", "Material ID", "Tipo", "Cantidad", "Precio", "Total", "Observaciones", "Fecha"} {
		header.AddCell().SetString(title)
	}

	for _, mv := range movimientos {
		row := movSheet.AddRow()
		row.AddCell().SetInt(mv.ID)
		row.AddCell().SetInt(mv.MaterialID)
		row.AddCell().SetString(mv.Tipo.String())
		row.AddCell().SetString(mv.Cantidad.String())
		row.AddCell().SetString(mv.Precio.String())
		row.AddCell().SetString(mv.Total().String())
		row.AddCell().SetString(mv.Observaciones)
		row.AddCell().SetString(mv.Fecha.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
