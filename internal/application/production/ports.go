package production

import (
	"context"

	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// TxRunner ejecuta los flujos productivos (muestreo, cosecha) dentro de
// una transacción: el registro operativo y su movimiento en el ledger se
// escriben juntos o no se escribe ninguno.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
		samplingRepo repository.SamplingRepository,
		harvestRepo repository.HarvestRepository,
	) error) error
}
