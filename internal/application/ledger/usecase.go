package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos del libro de existencias de forma
// transaccional, serializando los escritores de cada ciclo con un lock
// sobre la fila del ciclo (SELECT FOR UPDATE) y Commit/Rollback. Es el
// único escritor de stock_movements; el saldo se recalcula y persiste en
// cada inserción.
type LedgerUseCase struct {
	txRunner  TxRunner
	movRepo   repository.StockMovementRepository
	cycleRepo repository.CycleRepository
	pondRepo  repository.PondRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	pondRepo repository.PondRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		movRepo:   movRepo,
		cycleRepo: cycleRepo,
		pondRepo:  pondRepo,
	}
}

// MovementInput entrada para registrar un movimiento. Quantity es el delta
// ya firmado: los handlers de evento fijan el signo antes de llegar aquí.
type MovementInput struct {
	PondID    string
	CycleID   string
	Kind      string
	Quantity  int64
	EventDate time.Time
	RefTable  string
	RefID     string
	Note      string
	UserID    string
}

// RecordMovementInTx núcleo del motor, ejecutar SIEMPRE dentro de una
// transacción (los repos deben venir atados a la tx):
//  1. bloquea la fila del ciclo (SELECT FOR UPDATE); todo escritor del
//     mismo ciclo serializa aquí y relee estado ya comprometido al
//     despertar. El lock va sobre el ciclo y no sobre el último
//     movimiento porque los movimientos son filas inmutables: bloquear
//     una fila que nunca cambia no invalida el snapshot del segundo
//     escritor y permitiría un lost update del saldo
//  2. lee el último movimiento; si no existe, el ciclo arranca en saldo cero
//  3. valida monotonía temporal contra la fecha del último movimiento
//  4. calcula el nuevo saldo y rechaza si queda negativo
//  5. inserta el movimiento con el saldo resultante
//
// Cualquier error aborta la transacción completa: nunca hay efecto parcial.
func (uc *LedgerUseCase) RecordMovementInTx(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	locked, err := cycleRepo.GetForUpdate(in.CycleID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrNotFound
	}

	last, err := movRepo.GetLast(in.PondID, in.CycleID)
	if err != nil {
		return nil, err
	}

	var lastBalance int64
	if last != nil {
		if in.EventDate.Before(last.EventDate) {
			return nil, domain.ErrOutOfOrderEvent
		}
		lastBalance = last.Balance
	}

	newBalance := lastBalance + in.Quantity
	if newBalance < 0 {
		return nil, domain.ErrInsufficientStock
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		PondID:    in.PondID,
		CycleID:   in.CycleID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Balance:   newBalance,
		EventDate: in.EventDate,
		RefTable:  in.RefTable,
		RefID:     in.RefID,
		Note:      in.Note,
		CreatedBy: in.UserID,
		CreatedAt: time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordMovement abre su propia transacción y delega en RecordMovementInTx.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
	) error {
		m, err := uc.RecordMovementInTx(movRepo, cycleRepo, in)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// validateQuantity aplica la convención de signo por tipo de evento antes
// del despacho: los eventos de signo fijo exigen cantidad positiva; el
// ajuste admite ambos signos pero nunca cero.
func validateQuantity(kind string, quantity int64) error {
	switch kind {
	case entity.EventSeeding, entity.EventMortality, entity.EventHarvest,
		entity.EventTransferOut, entity.EventTransferIn:
		if quantity <= 0 {
			return domain.ErrInvalidInput
		}
		return nil
	case entity.EventAdjustment:
		if quantity == 0 {
			return domain.ErrZeroDelta
		}
		return nil
	default:
		return domain.ErrUnknownEventKind
	}
}

// RegisterSeedingInTx movimiento seeding (+quantity) que abre un ciclo.
// Lo invoca el ciclo de vida del ciclo dentro de su propia transacción.
func (uc *LedgerUseCase) RegisterSeedingInTx(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	cycle *entity.Cycle,
	userID string,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventSeeding, cycle.InitialQuantity); err != nil {
		return nil, err
	}
	return uc.RecordMovementInTx(movRepo, cycleRepo, MovementInput{
		PondID:    cycle.PondID,
		CycleID:   cycle.ID,
		Kind:      entity.EventSeeding,
		Quantity:  cycle.InitialQuantity,
		EventDate: cycle.StockingDate,
		RefTable:  entity.RefTableCycles,
		RefID:     cycle.ID,
		UserID:    userID,
	})
}

// RegisterMortalityInTx movimiento mortality (−quantity) referenciando el
// muestreo que lo observó. Lo invoca el flujo de muestreo en su misma tx.
func (uc *LedgerUseCase) RegisterMortalityInTx(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	sampling *entity.Sampling,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventMortality, sampling.MortalityCount); err != nil {
		return nil, err
	}
	return uc.RecordMovementInTx(movRepo, cycleRepo, MovementInput{
		PondID:    sampling.PondID,
		CycleID:   sampling.CycleID,
		Kind:      entity.EventMortality,
		Quantity:  -sampling.MortalityCount,
		EventDate: sampling.SamplingDate,
		RefTable:  entity.RefTableSamplings,
		RefID:     sampling.ID,
		Note:      sampling.Note,
		UserID:    sampling.CreatedBy,
	})
}

// RegisterHarvestInTx movimiento harvest (−quantity) referenciando la cosecha.
func (uc *LedgerUseCase) RegisterHarvestInTx(
	movRepo repository.StockMovementRepository,
	cycleRepo repository.CycleRepository,
	harvest *entity.Harvest,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventHarvest, harvest.Quantity); err != nil {
		return nil, err
	}
	return uc.RecordMovementInTx(movRepo, cycleRepo, MovementInput{
		PondID:    harvest.PondID,
		CycleID:   harvest.CycleID,
		Kind:      entity.EventHarvest,
		Quantity:  -harvest.Quantity,
		EventDate: harvest.HarvestDate,
		RefTable:  entity.RefTableHarvests,
		RefID:     harvest.ID,
		Note:      harvest.Note,
		UserID:    harvest.CreatedBy,
	})
}

// RegisterAdjustment ajuste manual con delta firmado (delta cero rechazado).
func (uc *LedgerUseCase) RegisterAdjustment(
	ctx context.Context,
	pondID, cycleID string,
	delta int64,
	eventDate time.Time,
	note, userID string,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventAdjustment, delta); err != nil {
		return nil, err
	}
	return uc.RecordMovement(ctx, MovementInput{
		PondID:    pondID,
		CycleID:   cycleID,
		Kind:      entity.EventAdjustment,
		Quantity:  delta,
		EventDate: eventDate,
		Note:      note,
		UserID:    userID,
	})
}

// RegisterTransferOut pata de salida de un traslado. transferGroupID
// correlaciona ambas patas; lo genera el caller.
func (uc *LedgerUseCase) RegisterTransferOut(
	ctx context.Context,
	pondID, cycleID string,
	quantity int64,
	eventDate time.Time,
	transferGroupID, note, userID string,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventTransferOut, quantity); err != nil {
		return nil, err
	}
	return uc.RecordMovement(ctx, MovementInput{
		PondID:    pondID,
		CycleID:   cycleID,
		Kind:      entity.EventTransferOut,
		Quantity:  -quantity,
		EventDate: eventDate,
		RefTable:  entity.RefTableTransfers,
		RefID:     transferGroupID,
		Note:      note,
		UserID:    userID,
	})
}

// RegisterTransferIn pata de entrada del mismo traslado. El destino debe
// existir: el motor no crea estanques ni ciclos.
func (uc *LedgerUseCase) RegisterTransferIn(
	ctx context.Context,
	pondID, cycleID string,
	quantity int64,
	eventDate time.Time,
	transferGroupID, note, userID string,
) (*entity.StockMovement, error) {
	if err := validateQuantity(entity.EventTransferIn, quantity); err != nil {
		return nil, err
	}
	return uc.RecordMovement(ctx, MovementInput{
		PondID:    pondID,
		CycleID:   cycleID,
		Kind:      entity.EventTransferIn,
		Quantity:  quantity,
		EventDate: eventDate,
		RefTable:  entity.RefTableTransfers,
		RefID:     transferGroupID,
		Note:      note,
		UserID:    userID,
	})
}

// TransferInput entrada para un traslado de población entre dos
// (estanque, ciclo) como operación de primera clase.
type TransferInput struct {
	FromPondID  string
	FromCycleID string
	ToPondID    string
	ToCycleID   string
	Quantity    int64
	EventDate   time.Time
	Note        string
	UserID      string
}

// Transfer escribe ambas patas del traslado en UNA transacción: valida que
// el ciclo destino exista y pertenezca al estanque destino, registra
// transfer_out en el origen y transfer_in en el destino con el mismo
// transfer_group_id. Si cualquier pata falla, ninguna queda escrita.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) (groupID string, err error) {
	if err := validateQuantity(entity.EventTransferOut, in.Quantity); err != nil {
		return "", err
	}
	if in.FromPondID == in.ToPondID && in.FromCycleID == in.ToCycleID {
		return "", domain.ErrInvalidInput
	}
	groupID = uuid.New().String()

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		cycleRepo repository.CycleRepository,
	) error {
		// Ambos ciclos se bloquean en orden estable de ID: dos traslados
		// en sentidos opuestos entre los mismos ciclos tomarían los locks
		// en orden cruzado y se bloquearían mutuamente.
		firstID, secondID := in.FromCycleID, in.ToCycleID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		if _, err := cycleRepo.GetForUpdate(firstID); err != nil {
			return err
		}
		dest, err := cycleRepo.GetForUpdate(secondID)
		if err != nil {
			return err
		}
		if secondID != in.ToCycleID {
			dest, err = cycleRepo.GetByID(in.ToCycleID)
			if err != nil {
				return err
			}
		}
		if dest == nil || dest.PondID != in.ToPondID {
			return domain.ErrNotFound
		}
		if dest.Status == entity.CycleStatusClosed {
			return domain.ErrConflict
		}
		if _, err := uc.RecordMovementInTx(movRepo, cycleRepo, MovementInput{
			PondID:    in.FromPondID,
			CycleID:   in.FromCycleID,
			Kind:      entity.EventTransferOut,
			Quantity:  -in.Quantity,
			EventDate: in.EventDate,
			RefTable:  entity.RefTableTransfers,
			RefID:     groupID,
			Note:      in.Note,
			UserID:    in.UserID,
		}); err != nil {
			return err
		}
		_, err = uc.RecordMovementInTx(movRepo, cycleRepo, MovementInput{
			PondID:    in.ToPondID,
			CycleID:   in.ToCycleID,
			Kind:      entity.EventTransferIn,
			Quantity:  in.Quantity,
			EventDate: in.EventDate,
			RefTable:  entity.RefTableTransfers,
			RefID:     groupID,
			Note:      in.Note,
			UserID:    in.UserID,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return groupID, nil
}

// GetBalance devuelve el saldo registrado del último movimiento del
// (estanque, ciclo), o 0 si el ciclo no tiene movimientos. Lectura sin
// bloqueo: snapshot informativo, no consistente frente a escritores
// concurrentes (el motor relee el saldo con el lock del ciclo tomado).
func (uc *LedgerUseCase) GetBalance(pondID, cycleID string) (int64, error) {
	last, err := uc.movRepo.GetLast(pondID, cycleID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}
	return last.Balance, nil
}

// ListByCycle kardex del ciclo (rango de fechas opcional, paginado).
func (uc *LedgerUseCase) ListByCycle(cycleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByCycle(cycleID, from, to, limit, offset)
}

// ListByPond kardex del estanque a través de todos sus ciclos.
func (uc *LedgerUseCase) ListByPond(pondID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByPond(pondID, from, to, limit, offset)
}
