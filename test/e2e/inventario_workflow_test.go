//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/averdugo/inventario-be/internal/adapters/memory"
	"github.com/averdugo/inventario-be/internal/core/services"
	"github.com/averdugo/inventario-be/internal/core/store"
	"github.com/averdugo/inventario-be/internal/handlers"
	"github.com/averdugo/inventario-be/internal/handlers/middleware"
	"github.com/averdugo/inventario-be/test/helpers"
)

type InventarioE2ESuite struct {
	suite.Suite
	server  *httptest.Server
	client  *http.Client
	baseURL string
}

func (s *InventarioE2ESuite) SetupSuite() {
	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *InventarioE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *InventarioE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	gateway := store.NewGateway(memory.NewStore(), logger)
	engine := services.NewInventarioService(
		store.NewMaterialStore(gateway, logger),
		store.NewMovimientoLedger(gateway, logger),
		logger,
	)

	materiales := handlers.NewMaterialHandler(engine, logger)
	movimientos := handlers.NewMovimientoHandler(engine, logger)
	export := handlers.NewExportHandler(engine, logger)
	health := handlers.NewHealthHandler(gateway, "e2e", logger)

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
	mux.HandleFunc("GET /api/v1/export/json", export.ExportJSON)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Readiness)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.RequestID(handler)

	return httptest.NewServer(handler)
}

func (s *InventarioE2ESuite) TestCompleteInventoryWorkflow() {
	// 1. Create a material
	createReq := map[string]interface{}{
		"nombre": "Cable THW 12 AWG",
		"tipo":   "Eléctrico",
		"precio": 10.0,
	}
	resp := s.makeRequest("POST", "/materiales", createReq)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var material handlers.MaterialResponse
	s.decode(resp, &material)
	s.Equal(1, material.ID)

	// 2. Record an entrada
	entradaReq := map[string]interface{}{
		"materialId":    material.ID,
		"tipo":          0,
		"cantidad":      20,
		"precio":        12.5,
		"observaciones": "compra inicial",
	}
	resp = s.makeRequest("POST", "/movimientos", entradaReq)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	// 3. Stock and price reflect the entrada
	resp = s.makeRequest("GET", fmt.Sprintf("/materiales/%d", material.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &material)
	s.True(material.Cantidad.Equal(decimal.NewFromInt(20)))
	s.True(material.PrecioTotal.Equal(decimal.NewFromFloat(250.0)))

	// 4. A salida beyond stock is rejected
	salidaReq := map[string]interface{}{
		"materialId": material.ID,
		"tipo":       1,
		"cantidad":   21,
	}
	resp = s.makeRequest("POST", "/movimientos", salidaReq)
	s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	// 5. A valid salida goes through
	salidaReq["cantidad"] = 5
	resp = s.makeRequest("POST", "/movimientos", salidaReq)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.makeRequest("GET", fmt.Sprintf("/materiales/%d", material.ID), nil)
	s.decode(resp, &material)
	s.True(material.Cantidad.Equal(decimal.NewFromInt(15)))

	// 6. The export snapshot carries both collections
	resp = s.makeRequest("GET", "/export/json", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var export handlers.JSONExportResponse
	s.decode(resp, &export)
	s.Len(export.Materiales, 1)
	s.Len(export.Movimientos, 2)

	// 7. Deleting the material cascades its ledger entries
	resp = s.makeRequest("DELETE", fmt.Sprintf("/materiales/%d", material.ID), nil)
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.makeRequest("GET", "/movimientos", nil)
	var movimientos []handlers.MovimientoResponse
	s.decode(resp, &movimientos)
	s.Empty(movimientos)
}

func (s *InventarioE2ESuite) TestHealthEndpoints() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, err = s.client.Get(s.server.URL + "/ready")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *InventarioE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *InventarioE2ESuite) decode(resp *http.Response, target interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(target))
}

func TestInventarioE2ESuite(t *testing.T) {
	suite.Run(t, new(InventarioE2ESuite))
}
