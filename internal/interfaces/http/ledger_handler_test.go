package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acuicola-api/internal/application/auth"
	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Acuicola-api/internal/interfaces/http"
)

const (
	apiPondID  = "00000000-0000-0000-0000-0000000000a1"
	apiCycleID = "00000000-0000-0000-0000-0000000000c1"
)

// newAPIFixture monta la API completa sobre el backend en memoria con un
// estanque y un ciclo sembrado con 1000 animales.
func newAPIFixture(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	movRepo := memory.NewStockMovementRepository(store)
	cycleRepo := memory.NewCycleRepository(store)
	pondRepo := memory.NewPondRepository(store)
	farmRepo := memory.NewFarmRepository(store)
	userRepo := memory.NewUserRepository(store)
	txRunner := memory.NewTxRunner(store)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, movRepo, cycleRepo, pondRepo)
	cycleUC := cycle.NewCycleUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	productionUC := production.NewProductionUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	farmUC := usecase.NewFarmUseCase(farmRepo)
	pondUC := usecase.NewPondUseCase(pondRepo)
	authUC := auth.NewAuthUseCase(userRepo, farmRepo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	require.NoError(t, farmRepo.Create(&entity.Farm{ID: testFarmID, Name: "Granja Test"}))
	require.NoError(t, pondRepo.Create(&entity.Pond{
		ID:     apiPondID,
		FarmID: testFarmID,
		Name:   "Estanque 1",
		AreaM2: decimal.NewFromInt(500),
		Status: "active",
	}))
	require.NoError(t, cycleRepo.Create(&entity.Cycle{
		ID:              apiCycleID,
		PondID:          apiPondID,
		Species:         "tilapia",
		InitialQuantity: 1000,
		StockingDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:          entity.CycleStatusGrowing,
	}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		FarmUC:       farmUC,
		PondUC:       pondUC,
		LedgerUC:     ledgerUC,
		CycleUC:      cycleUC,
		ProductionUC: productionUC,
		AuthUC:       authUC,
		JWTSecret:    testJWTSecret,
	})

	// Siembra de apertura vía el motor (el fixture creó el ciclo directo
	// en el repo para controlar los IDs).
	_, err := ledgerUC.RecordMovement(context.Background(), ledger.MovementInput{
		PondID:    apiPondID,
		CycleID:   apiCycleID,
		Kind:      entity.EventSeeding,
		Quantity:  1000,
		EventDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		UserID:    testUserID,
	})
	require.NoError(t, err)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, role string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/ledger/movements
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: ajuste manual válido → 201 con el saldo resultante.
func TestAPI_AjusteManual(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "teknisi", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "adjustment",
		"quantity":   -25,
		"event_date": "2025-03-10T00:00:00Z",
		"note":       "conteo físico",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(975), body["balance"])
	assert.Equal(t, "adjustment", body["kind"])
}

// Caso 2: ajuste con delta cero → 400 ZERO_DELTA.
func TestAPI_AjusteDeltaCero(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "admin", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "adjustment",
		"quantity":   0,
		"event_date": "2025-03-10T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ZERO_DELTA", decodeBody(t, resp)["code"])
}

// Caso 3: desfondar el saldo → 409 INSUFFICIENT_STOCK.
func TestAPI_StockInsuficiente(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "admin", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "adjustment",
		"quantity":   -2000,
		"event_date": "2025-03-10T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, resp)["code"])
}

// Caso 4: evento fechado antes del último movimiento → 409 OUT_OF_ORDER_EVENT.
func TestAPI_EventoFueraDeOrden(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "admin", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "adjustment",
		"quantity":   -5,
		"event_date": "2025-02-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OUT_OF_ORDER_EVENT", decodeBody(t, resp)["code"])
}

// Caso 5: tipo de evento desconocido → 400 UNKNOWN_EVENT_KIND.
func TestAPI_TipoDesconocido(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "admin", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "teleport",
		"quantity":   5,
		"event_date": "2025-03-10T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_EVENT_KIND", decodeBody(t, resp)["code"])
}

// Caso 6: el rol operador no puede registrar ajustes manuales.
func TestAPI_OperadorSinPermisoDeAjuste(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/movements", "operador", fiber.Map{
		"pond_id":    apiPondID,
		"cycle_id":   apiCycleID,
		"kind":       "adjustment",
		"quantity":   -5,
		"event_date": "2025-03-10T00:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/ledger/balance y kardex
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: el saldo se consulta por query params.
func TestAPI_ConsultaSaldo(t *testing.T) {
	app := newAPIFixture(t)

	path := fmt.Sprintf("/api/ledger/balance?pond_id=%s&cycle_id=%s", apiPondID, apiCycleID)
	resp := doJSON(t, app, http.MethodGet, path, "operador", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1000), body["balance"])
}

// Caso 7b: el kardex lista los movimientos del ciclo.
func TestAPI_Kardex(t *testing.T) {
	app := newAPIFixture(t)

	path := fmt.Sprintf("/api/ledger/movements?pond_id=%s&cycle_id=%s", apiPondID, apiCycleID)
	resp := doJSON(t, app, http.MethodGet, path, "operador", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
}

// Caso 8: sin token → 401 en todas las rutas del ledger.
func TestAPI_SinToken(t *testing.T) {
	app := newAPIFixture(t)

	resp := doJSON(t, app, http.MethodGet, "/api/ledger/balance?pond_id=x&cycle_id=y", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
