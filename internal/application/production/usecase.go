package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// ProductionUseCase registra los eventos operativos del ciclo (muestreos
// de crecimiento y cosechas). Cada flujo escribe su registro y el
// movimiento de ledger asociado en una sola transacción; los invariantes
// del saldo los mantiene siempre el motor del ledger.
type ProductionUseCase struct {
	txRunner  TxRunner
	ledgerUC  *ledger.LedgerUseCase
	cycleRepo repository.CycleRepository
	pondRepo  repository.PondRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner TxRunner,
	ledgerUC *ledger.LedgerUseCase,
	cycleRepo repository.CycleRepository,
	pondRepo repository.PondRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:  txRunner,
		ledgerUC:  ledgerUC,
		cycleRepo: cycleRepo,
		pondRepo:  pondRepo,
	}
}

// SamplingResult muestreo persistido más el saldo vigente del ciclo tras
// aplicar la mortalidad observada.
type SamplingResult struct {
	Sampling *entity.Sampling
	Balance  int64
}

// RegisterSampling registra un muestreo de crecimiento. Si la mortalidad
// observada es mayor que cero, el mismo commit incluye el movimiento
// mortality que referencia al muestreo.
func (uc *ProductionUseCase) RegisterSampling(ctx context.Context, farmID, userID string, in dto.RegisterSamplingRequest) (*SamplingResult, error) {
	if in.SampleSize <= 0 || in.SamplingDate.IsZero() || in.MortalityCount < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.AvgWeightGram.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cycle, err := uc.getOwnedCycle(farmID, in.PondID, in.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status != entity.CycleStatusGrowing {
		return nil, domain.ErrConflict
	}

	sampling := &entity.Sampling{
		ID:             uuid.New().String(),
		PondID:         in.PondID,
		CycleID:        in.CycleID,
		SamplingDate:   in.SamplingDate,
		SampleSize:     in.SampleSize,
		AvgWeightGram:  in.AvgWeightGram,
		MortalityCount: in.MortalityCount,
		Note:           in.Note,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
	}

	var balance int64
	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
		samplingRepo repository.SamplingRepository,
		_ repository.HarvestRepository,
	) error {
		if err := samplingRepo.Create(sampling); err != nil {
			return err
		}
		if sampling.MortalityCount > 0 {
			mov, err := uc.ledgerUC.RegisterMortalityInTx(movRepo, cycleRepo, sampling)
			if err != nil {
				return err
			}
			balance = mov.Balance
			return nil
		}
		last, err := movRepo.GetLast(in.PondID, in.CycleID)
		if err != nil {
			return err
		}
		if last != nil {
			balance = last.Balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SamplingResult{Sampling: sampling, Balance: balance}, nil
}

// HarvestResult cosecha persistida más el saldo resultante del ciclo.
type HarvestResult struct {
	Harvest *entity.Harvest
	Balance int64
}

// RegisterHarvest registra una cosecha parcial o total. El movimiento
// harvest y el registro de cosecha comparten transacción; una cosecha
// total además pasa el ciclo a estado harvest (el cierre definitivo lo
// decide el operador con CloseCycle).
func (uc *ProductionUseCase) RegisterHarvest(ctx context.Context, farmID, userID string, in dto.RegisterHarvestRequest) (*HarvestResult, error) {
	if in.Quantity <= 0 || in.HarvestDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.HarvestPartial && in.Kind != entity.HarvestTotal {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalWeightKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cycle, err := uc.getOwnedCycle(farmID, in.PondID, in.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status == entity.CycleStatusClosed {
		return nil, domain.ErrConflict
	}

	harvest := &entity.Harvest{
		ID:            uuid.New().String(),
		PondID:        in.PondID,
		CycleID:       in.CycleID,
		HarvestDate:   in.HarvestDate,
		Quantity:      in.Quantity,
		Kind:          in.Kind,
		TotalWeightKg: in.TotalWeightKg,
		Note:          in.Note,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}

	var balance int64
	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
		_ repository.SamplingRepository,
		harvestRepo repository.HarvestRepository,
	) error {
		if err := harvestRepo.Create(harvest); err != nil {
			return err
		}
		mov, err := uc.ledgerUC.RegisterHarvestInTx(movRepo, cycleRepo, harvest)
		if err != nil {
			return err
		}
		balance = mov.Balance
		if in.Kind == entity.HarvestTotal && cycle.Status == entity.CycleStatusGrowing {
			return cycleRepo.UpdateStatus(cycle.ID, entity.CycleStatusHarvest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &HarvestResult{Harvest: harvest, Balance: balance}, nil
}

func (uc *ProductionUseCase) getOwnedCycle(farmID, pondID, cycleID string) (*entity.Cycle, error) {
	if pondID == "" || cycleID == "" {
		return nil, domain.ErrInvalidInput
	}
	cycle, err := uc.cycleRepo.GetByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || cycle.PondID != pondID {
		return nil, domain.ErrNotFound
	}
	pond, err := uc.pondRepo.GetByID(pondID)
	if err != nil {
		return nil, err
	}
	if pond == nil {
		return nil, domain.ErrNotFound
	}
	if pond.FarmID != farmID {
		return nil, domain.ErrForbidden
	}
	return cycle, nil
}
