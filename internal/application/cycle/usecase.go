package cycle

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

// CycleUseCase gestiona el ciclo de vida de los ciclos productivos:
// apertura (siembra) con su movimiento seeding en la misma transacción,
// y cierre. El motor del ledger nunca cambia el estado del ciclo; eso
// ocurre solo aquí y en el flujo de cosecha.
type CycleUseCase struct {
	txRunner  ledger.TxRunner
	ledgerUC  *ledger.LedgerUseCase
	cycleRepo repository.CycleRepository
	pondRepo  repository.PondRepository
}

// NewCycleUseCase construye el caso de uso.
func NewCycleUseCase(
	txRunner ledger.TxRunner,
	ledgerUC *ledger.LedgerUseCase,
	cycleRepo repository.CycleRepository,
	pondRepo repository.PondRepository,
) *CycleUseCase {
	return &CycleUseCase{
		txRunner:  txRunner,
		ledgerUC:  ledgerUC,
		cycleRepo: cycleRepo,
		pondRepo:  pondRepo,
	}
}

// CreateCycle abre un ciclo en el estanque:
//  1. verifica bajo la misma transacción que el estanque no tenga un ciclo
//     growing (y la tabla lo refuerza con índice único parcial)
//  2. inserta el ciclo en estado growing
//  3. registra el movimiento seeding de apertura (+initial_quantity) vía
//     el motor del ledger, en la misma transacción
//  4. guarda el id del movimiento como referencia de apertura del ciclo
func (uc *CycleUseCase) CreateCycle(ctx context.Context, farmID, userID string, in dto.CreateCycleRequest) (*entity.Cycle, error) {
	if in.PondID == "" || in.Species == "" || in.StockingDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	pond, err := uc.pondRepo.GetByID(in.PondID)
	if err != nil {
		return nil, err
	}
	if pond == nil {
		return nil, domain.ErrNotFound
	}
	if pond.FarmID != farmID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	cycle := &entity.Cycle{
		ID:              uuid.New().String(),
		PondID:          in.PondID,
		Species:         in.Species,
		InitialQuantity: in.InitialQuantity,
		StockingDate:    in.StockingDate,
		Status:          entity.CycleStatusGrowing,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       userID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
	) error {
		active, err := cycleRepo.GetActiveByPond(in.PondID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrCycleAlreadyActive
		}
		if err := cycleRepo.Create(cycle); err != nil {
			return err
		}
		mov, err := uc.ledgerUC.RegisterSeedingInTx(movRepo, cycleRepo, cycle, userID)
		if err != nil {
			return err
		}
		if err := cycleRepo.SetOpeningMovement(cycle.ID, mov.ID); err != nil {
			return err
		}
		cycle.OpeningMovementID = mov.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cycle, nil
}

// CloseCycle pasa el ciclo a closed. No exige saldo cero: el cierre es una
// decisión del flujo dueño tras la cosecha final.
func (uc *CycleUseCase) CloseCycle(ctx context.Context, farmID, cycleID string) (*entity.Cycle, error) {
	cycle, err := uc.getOwned(farmID, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status == entity.CycleStatusClosed {
		return nil, domain.ErrConflict
	}
	if err := uc.cycleRepo.UpdateStatus(cycle.ID, entity.CycleStatusClosed); err != nil {
		return nil, err
	}
	cycle.Status = entity.CycleStatusClosed
	return cycle, nil
}

// GetCycle devuelve el ciclo validando pertenencia a la granja.
func (uc *CycleUseCase) GetCycle(farmID, cycleID string) (*entity.Cycle, error) {
	return uc.getOwned(farmID, cycleID)
}

// ListByPond lista los ciclos de un estanque de la granja.
func (uc *CycleUseCase) ListByPond(farmID, pondID string, limit, offset int) ([]*entity.Cycle, error) {
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
	return uc.cycleRepo.ListByPond(pondID, limit, offset)
}

func (uc *CycleUseCase) getOwned(farmID, cycleID string) (*entity.Cycle, error) {
	cycle, err := uc.cycleRepo.GetByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, domain.ErrNotFound
	}
	pond, err := uc.pondRepo.GetByID(cycle.PondID)
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
