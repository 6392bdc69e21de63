package cycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/infrastructure/memory"
)

const (
	testFarmID = "00000000-0000-0000-0000-00000000000f"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testPondID = "00000000-0000-0000-0000-0000000000a1"
)

var stockingDate = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type cycleFixture struct {
	uc       *cycle.CycleUseCase
	ledgerUC *ledger.LedgerUseCase
}

func newCycleFixture(t *testing.T) *cycleFixture {
	t.Helper()
	store := memory.NewStore()
	movRepo := memory.NewStockMovementRepository(store)
	cycleRepo := memory.NewCycleRepository(store)
	pondRepo := memory.NewPondRepository(store)
	txRunner := memory.NewTxRunner(store)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, movRepo, cycleRepo, pondRepo)
	uc := cycle.NewCycleUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)

	require.NoError(t, pondRepo.Create(&entity.Pond{
		ID:     testPondID,
		FarmID: testFarmID,
		Name:   "Estanque 1",
		AreaM2: decimal.NewFromInt(500),
		Status: "active",
	}))
	return &cycleFixture{uc: uc, ledgerUC: ledgerUC}
}

func validRequest() dto.CreateCycleRequest {
	return dto.CreateCycleRequest{
		PondID:          testPondID,
		Species:         "tilapia",
		InitialQuantity: 1000,
		StockingDate:    stockingDate,
	}
}

// Caso 1: abrir un ciclo crea el movimiento seeding en la misma operación
// y el saldo inicial equivale a la cantidad sembrada.
func TestCycle_AperturaRegistraSiembra(t *testing.T) {
	f := newCycleFixture(t)

	cy, err := f.uc.CreateCycle(context.Background(), testFarmID, testUserID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.CycleStatusGrowing, cy.Status)
	require.NotEmpty(t, cy.OpeningMovementID, "el ciclo guarda su movimiento de apertura")

	balance, err := f.ledgerUC.GetBalance(testPondID, cy.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance, "el saldo inicial es la siembra")

	movs, err := f.ledgerUC.ListByCycle(cy.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.EventSeeding, movs[0].Kind)
	assert.Equal(t, cy.OpeningMovementID, movs[0].ID)
	assert.Equal(t, entity.RefTableCycles, movs[0].RefTable)
	assert.Equal(t, cy.ID, movs[0].RefID)
}

// Caso 2: un estanque con ciclo growing no admite una segunda apertura.
func TestCycle_UnSoloCicloActivoPorEstanque(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, validRequest())
	require.NoError(t, err)

	_, err = f.uc.CreateCycle(ctx, testFarmID, testUserID, validRequest())
	assert.ErrorIs(t, err, domain.ErrCycleAlreadyActive)
}

// Caso 2b: tras cerrar el ciclo, el estanque vuelve a admitir siembra.
func TestCycle_CerradoPermiteNuevaSiembra(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, validRequest())
	require.NoError(t, err)

	_, err = f.uc.CloseCycle(ctx, testFarmID, first.ID)
	require.NoError(t, err)

	second, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

// Caso 3: cerrar un ciclo ya cerrado es conflicto.
func TestCycle_CierreDoble(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	cy, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, validRequest())
	require.NoError(t, err)

	closed, err := f.uc.CloseCycle(ctx, testFarmID, cy.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CycleStatusClosed, closed.Status)

	_, err = f.uc.CloseCycle(ctx, testFarmID, cy.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 4: validaciones de entrada.
func TestCycle_EntradaInvalida(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	in := validRequest()
	in.InitialQuantity = 0
	_, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "siembra de cero animales")

	in = validRequest()
	in.Species = ""
	_, err = f.uc.CreateCycle(ctx, testFarmID, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "especie requerida")
}

// Caso 5: el estanque debe pertenecer a la granja del operador.
func TestCycle_OtraGranjaProhibida(t *testing.T) {
	f := newCycleFixture(t)

	_, err := f.uc.CreateCycle(context.Background(), "otra-granja", testUserID, validRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso 6: si la apertura falla, no queda ni ciclo ni movimiento (la
// transacción se revierte completa). Se fuerza el fallo sembrando sobre
// un estanque inexistente referenciado por la request.
func TestCycle_AperturaFallidaNoDejaRastro(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	in := validRequest()
	in.PondID = "no-existe"
	_, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.uc.ListByPond(testFarmID, testPondID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "el estanque real sigue sin ciclos")
}

// Caso 7: el listado de ciclos sale ordenado por fecha de siembra
// descendente, igual en ambos backends, y la paginación corta sobre ese
// orden.
func TestCycle_ListadoOrdenadoPorSiembra(t *testing.T) {
	f := newCycleFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		in := validRequest()
		in.StockingDate = stockingDate.AddDate(0, i, 0)
		cy, err := f.uc.CreateCycle(ctx, testFarmID, testUserID, in)
		require.NoError(t, err)
		ids = append(ids, cy.ID)
		_, err = f.uc.CloseCycle(ctx, testFarmID, cy.ID)
		require.NoError(t, err)
	}

	list, err := f.uc.ListByPond(testFarmID, testPondID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID, "el sembrado más reciente va primero")
	assert.Equal(t, ids[0], list[2].ID)

	page, err := f.uc.ListByPond(testFarmID, testPondID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID, "la página corta sobre el orden fijado")
}
