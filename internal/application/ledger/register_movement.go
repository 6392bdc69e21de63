package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// RegisterFromRequest despacha un movimiento manual al handler del tipo de
// evento indicado. Usar desde el endpoint de ajuste de stock: valida que
// el ciclo exista, pertenezca al estanque y que el estanque sea de la
// granja del operador, y luego fija la convención de signo por tipo.
// Un tipo sin handler registrado devuelve domain.ErrUnknownEventKind.
func (uc *LedgerUseCase) RegisterFromRequest(ctx context.Context, farmID, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	if in.PondID == "" || in.CycleID == "" || in.EventDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	cycle, err := uc.cycleRepo.GetByID(in.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || cycle.PondID != in.PondID {
		return nil, domain.ErrNotFound
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

	switch in.Kind {
	case entity.EventAdjustment:
		return uc.RegisterAdjustment(ctx, in.PondID, in.CycleID, in.Quantity, in.EventDate, in.Note, userID)
	case entity.EventTransferOut:
		groupID := in.TransferGroupID
		if groupID == "" {
			groupID = uuid.New().String()
		}
		return uc.RegisterTransferOut(ctx, in.PondID, in.CycleID, in.Quantity, in.EventDate, groupID, in.Note, userID)
	case entity.EventTransferIn:
		// La pata de entrada exige el transfer_group_id de la pata de
		// salida; sin correlación el traslado no se puede reconstruir.
		if in.TransferGroupID == "" {
			return nil, domain.ErrInvalidInput
		}
		return uc.RegisterTransferIn(ctx, in.PondID, in.CycleID, in.Quantity, in.EventDate, in.TransferGroupID, in.Note, userID)
	default:
		// seeding, mortality y harvest no se registran por el endpoint
		// manual: nacen de sus propios flujos (ciclo, muestreo, cosecha).
		return nil, domain.ErrUnknownEventKind
	}
}
