// internal/handlers/materiales_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averdugo/inventario-be/internal/handlers"
	"github.com/averdugo/inventario-be/test/helpers"
)

// newTestMux wires the handlers over an in-memory engine the way the API
// entrypoint does, so tests exercise routing, DTO mapping and status codes
// end to end.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	engine, _ := helpers.NewTestEngine(t)
	logger := helpers.TestLogger()

	materiales := handlers.NewMaterialHandler(engine, logger)
	movimientos := handlers.NewMovimientoHandler(engine, logger)
	export := handlers.NewExportHandler(engine, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/materiales", materiales.ListMateriales)
	mux.HandleFunc("POST /api/v1/materiales", materiales.CreateMaterial)
	mux.HandleFunc("GET /api/v1/materiales/{id}", materiales.GetMaterial)
	mux.HandleFunc("PUT /api/v1/materiales/{id}", materiales.UpdateMaterial)
	mux.HandleFunc("DELETE /api/v1/materiales/{id}", materiales.DeleteMaterial)
	mux.HandleFunc("GET /api/v1/materiales/{id}/movimientos", movimientos.ListByMaterial)
	mux.HandleFunc("GET /api/v1/movimientos", movimientos.ListMovimientos)
	mux.HandleFunc("POST /api/v1/movimientos", movimientos.CreateMovimiento)
	mux.HandleFunc("DELETE /api/v1/movimientos/{id}", movimientos.DeleteMovimiento)
	mux.HandleFunc("GET /api/v1/export/excel", export.ExportExcel)
	mux.HandleFunc("GET /api/v1/export/json", export.ExportJSON)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createMaterial(t *testing.T, mux *http.ServeMux) handlers.MaterialResponse {
	t.Helper()

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/materiales", map[string]interface{}{
		"nombre": "Cable THW 12 AWG",
		"tipo":   "Eléctrico",
		"precio": 10.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created handlers.MaterialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestCreateMaterial(t *testing.T) {
	mux := newTestMux(t)

	created := createMaterial(t, mux)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Cable THW 12 AWG", created.Nombre)
	assert.False(t, created.FechaCreacion.IsZero())
}

func TestCreateMaterial_Invalid(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing_nombre", map[string]interface{}{"tipo": "Eléctrico"}},
		{"negative_precio", map[string]interface{}{"nombre": "Cable", "precio": -1}},
		{"negative_cantidad", map[string]interface{}{"nombre": "Cable", "cantidad": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPost, "/api/v1/materiales", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateMaterial_MalformedBody(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/materiales", bytes.NewReader([]byte(`{broken`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMaterial(t *testing.T) {
	mux := newTestMux(t)
	created := createMaterial(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/materiales/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got handlers.MaterialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Nombre, got.Nombre)
}

func TestGetMaterial_NotFound(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/materiales/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMaterial_InvalidID(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/materiales/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMaterial(t *testing.T) {
	mux := newTestMux(t)
	createMaterial(t, mux)

	rec := doJSON(t, mux, http.MethodPut, "/api/v1/materiales/1", map[string]interface{}{
		"nombre": "Cable THW 10 AWG",
		"tipo":   "Eléctrico",
		"precio": 15.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated handlers.MaterialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Cable THW 10 AWG", updated.Nombre)
}

func TestUpdateMaterial_NotFound(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/v1/materiales/9", map[string]interface{}{
		"nombre": "Cable",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMaterial(t *testing.T) {
	mux := newTestMux(t)
	createMaterial(t, mux)

	rec := doJSON(t, mux, http.MethodDelete, "/api/v1/materiales/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/materiales/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMaterial_NotFound(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodDelete, "/api/v1/materiales/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMateriales(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/materiales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	createMaterial(t, mux)
	createMaterial(t, mux)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/materiales", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []handlers.MaterialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 2, list[1].ID)
}
