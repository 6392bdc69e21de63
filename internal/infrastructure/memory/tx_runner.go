package memory

import (
	"context"

	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and production.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks contra el store en memoria. El mutex del
// store se mantiene durante toda la "transacción": los escritores
// serializan igual que con el bloqueo de fila del adaptador PostgreSQL,
// y el staging se aplica solo en commit.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner con el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a una transacción en memoria.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := newStoreTx(r.s)
	movRepo := &StockMovementRepo{s: r.s, tx: tx}
	cycleRepo := &CycleRepo{s: r.s, tx: tx}

	if err := fn(movRepo, cycleRepo); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// RunProduction ejecuta fn con los repos de los flujos productivos.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	samplingRepo repository.SamplingRepository,
	harvestRepo repository.HarvestRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := newStoreTx(r.s)
	movRepo := &StockMovementRepo{s: r.s, tx: tx}
	cycleRepo := &CycleRepo{s: r.s, tx: tx}
	samplingRepo := &SamplingRepo{s: r.s, tx: tx}
	harvestRepo := &HarvestRepo{s: r.s, tx: tx}

	if err := fn(movRepo, cycleRepo, samplingRepo, harvestRepo); err != nil {
		return err
	}
	tx.commit()
	return nil
}
