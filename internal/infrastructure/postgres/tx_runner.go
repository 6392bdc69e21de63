package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and production.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El
// bloqueo FOR UPDATE que toma el motor del ledger vive y muere con la
// transacción que se abre aquí.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	cycleRepo := NewCycleRepository(tx)

	if err := fn(movRepo, cycleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia una transacción con los repos de los flujos
// productivos (muestreos y cosechas además del ledger).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	samplingRepo repository.SamplingRepository,
	harvestRepo repository.HarvestRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	cycleRepo := NewCycleRepository(tx)
	samplingRepo := NewSamplingRepository(tx)
	harvestRepo := NewHarvestRepository(tx)

	if err := fn(movRepo, cycleRepo, samplingRepo, harvestRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
