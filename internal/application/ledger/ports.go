package ledger

import (
	"context"

	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// existencias: o se inserta el movimiento con su saldo, o no queda nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
	) error) error
}
