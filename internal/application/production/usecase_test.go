package production_test

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
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/infrastructure/memory"
)

const (
	testFarmID = "00000000-0000-0000-0000-00000000000f"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testPondID = "00000000-0000-0000-0000-0000000000a1"
)

var day0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

type productionFixture struct {
	uc        *production.ProductionUseCase
	ledgerUC  *ledger.LedgerUseCase
	cycleUC   *cycle.CycleUseCase
	samplings *memory.SamplingRepo
	harvests  *memory.HarvestRepo
	cycleID   string
}

// newProductionFixture abre un ciclo de 1000 animales listo para
// muestreos y cosechas.
func newProductionFixture(t *testing.T) *productionFixture {
	t.Helper()
	store := memory.NewStore()
	movRepo := memory.NewStockMovementRepository(store)
	cycleRepo := memory.NewCycleRepository(store)
	pondRepo := memory.NewPondRepository(store)
	txRunner := memory.NewTxRunner(store)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, movRepo, cycleRepo, pondRepo)
	cycleUC := cycle.NewCycleUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)
	uc := production.NewProductionUseCase(txRunner, ledgerUC, cycleRepo, pondRepo)

	require.NoError(t, pondRepo.Create(&entity.Pond{
		ID:     testPondID,
		FarmID: testFarmID,
		Name:   "Estanque 1",
		AreaM2: decimal.NewFromInt(500),
		Status: "active",
	}))
	cy, err := cycleUC.CreateCycle(context.Background(), testFarmID, testUserID, dto.CreateCycleRequest{
		PondID:          testPondID,
		Species:         "tilapia",
		InitialQuantity: 1000,
		StockingDate:    day(0),
	})
	require.NoError(t, err)

	return &productionFixture{
		uc:        uc,
		ledgerUC:  ledgerUC,
		cycleUC:   cycleUC,
		samplings: memory.NewSamplingRepository(store),
		harvests:  memory.NewHarvestRepository(store),
		cycleID:   cy.ID,
	}
}

func samplingRequest(f *productionFixture, mortality int64) dto.RegisterSamplingRequest {
	return dto.RegisterSamplingRequest{
		PondID:         testPondID,
		CycleID:        f.cycleID,
		SamplingDate:   day(15),
		SampleSize:     30,
		AvgWeightGram:  decimal.NewFromFloat(12.5),
		MortalityCount: mortality,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Muestreos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: muestreo con mortalidad escribe el muestreo y su movimiento
// mortality en el mismo commit; el movimiento referencia al muestreo.
func TestSampling_ConMortalidadEscribeAmbos(t *testing.T) {
	f := newProductionFixture(t)

	res, err := f.uc.RegisterSampling(context.Background(), testFarmID, testUserID, samplingRequest(f, 40))
	require.NoError(t, err)
	assert.Equal(t, int64(960), res.Balance)

	movs, err := f.ledgerUC.ListByCycle(f.cycleID, nil, nil, 1, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.EventMortality, movs[0].Kind)
	assert.Equal(t, int64(-40), movs[0].Quantity)
	assert.Equal(t, entity.RefTableSamplings, movs[0].RefTable)
	assert.Equal(t, res.Sampling.ID, movs[0].RefID, "el movimiento apunta al muestreo")

	persisted, err := f.samplings.GetByID(res.Sampling.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, int64(40), persisted.MortalityCount)
}

// Caso 1b: muestreo sin mortalidad no genera movimiento; el saldo queda
// intacto y la biomasa se estima con el saldo vigente.
func TestSampling_SinMortalidadNoMueveSaldo(t *testing.T) {
	f := newProductionFixture(t)

	res, err := f.uc.RegisterSampling(context.Background(), testFarmID, testUserID, samplingRequest(f, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Balance)

	movs, err := f.ledgerUC.ListByCycle(f.cycleID, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo la siembra")

	// 1000 animales * 12.5 g = 12.5 kg
	biomass := res.Sampling.Biomass(res.Balance)
	assert.True(t, biomass.Equal(decimal.NewFromFloat(12.5)), "biomasa estimada: %s", biomass)
}

// Caso 2: si la mortalidad desfonda el saldo, tampoco queda el muestreo:
// la transacción se revierte entera.
func TestSampling_MortalidadExcesivaRevierteTodo(t *testing.T) {
	f := newProductionFixture(t)

	_, err := f.uc.RegisterSampling(context.Background(), testFarmID, testUserID, samplingRequest(f, 1500))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := f.samplings.ListByCycle(f.cycleID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "el muestreo no queda persistido")

	balance, err := f.ledgerUC.GetBalance(testPondID, f.cycleID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

// Caso 3: muestrear un ciclo que ya no está growing es conflicto.
func TestSampling_CicloNoGrowing(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterHarvest(ctx, testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:        testPondID,
		CycleID:       f.cycleID,
		HarvestDate:   day(100),
		Quantity:      1000,
		Kind:          entity.HarvestTotal,
		TotalWeightKg: decimal.NewFromInt(450),
	})
	require.NoError(t, err)

	in := samplingRequest(f, 0)
	in.SamplingDate = day(101)
	_, err = f.uc.RegisterSampling(ctx, testFarmID, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cosechas
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: cosecha parcial descuenta sin tocar el estado del ciclo.
func TestHarvest_ParcialMantieneCiclo(t *testing.T) {
	f := newProductionFixture(t)

	res, err := f.uc.RegisterHarvest(context.Background(), testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:        testPondID,
		CycleID:       f.cycleID,
		HarvestDate:   day(90),
		Quantity:      300,
		Kind:          entity.HarvestPartial,
		TotalWeightKg: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), res.Balance)

	cy, err := f.cycleUC.GetCycle(testFarmID, f.cycleID)
	require.NoError(t, err)
	assert.Equal(t, entity.CycleStatusGrowing, cy.Status)
}

// Caso 5: cosecha total descuenta y pasa el ciclo a estado harvest en la
// misma transacción.
func TestHarvest_TotalCambiaEstado(t *testing.T) {
	f := newProductionFixture(t)

	res, err := f.uc.RegisterHarvest(context.Background(), testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:        testPondID,
		CycleID:       f.cycleID,
		HarvestDate:   day(120),
		Quantity:      1000,
		Kind:          entity.HarvestTotal,
		TotalWeightKg: decimal.NewFromInt(480),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Balance)

	cy, err := f.cycleUC.GetCycle(testFarmID, f.cycleID)
	require.NoError(t, err)
	assert.Equal(t, entity.CycleStatusHarvest, cy.Status)

	persisted, err := f.harvests.GetByID(res.Harvest.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, persisted.TotalWeightKg.Equal(decimal.NewFromInt(480)))
}

// Caso 6: cosechar más de lo que hay revierte la cosecha completa.
func TestHarvest_ExcesivaRevierteTodo(t *testing.T) {
	f := newProductionFixture(t)

	_, err := f.uc.RegisterHarvest(context.Background(), testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:        testPondID,
		CycleID:       f.cycleID,
		HarvestDate:   day(90),
		Quantity:      1200,
		Kind:          entity.HarvestPartial,
		TotalWeightKg: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := f.harvests.ListByCycle(f.cycleID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "la cosecha no queda persistida")
}

// Caso 7: validaciones de entrada de cosecha.
func TestHarvest_EntradaInvalida(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterHarvest(ctx, testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:      testPondID,
		CycleID:     f.cycleID,
		HarvestDate: day(90),
		Quantity:    100,
		Kind:        "medio",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "kind debe ser partial o total")

	_, err = f.uc.RegisterHarvest(ctx, testFarmID, testUserID, dto.RegisterHarvestRequest{
		PondID:      testPondID,
		CycleID:     f.cycleID,
		HarvestDate: day(90),
		Quantity:    0,
		Kind:        entity.HarvestPartial,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad positiva requerida")
}
