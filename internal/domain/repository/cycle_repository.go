package repository

import "github.com/jhoicas/Acuicola-api/internal/domain/entity"

// CycleRepository define el puerto de persistencia de ciclos productivos.
type CycleRepository interface {
	// Create inserta el ciclo. La tabla lleva un índice único parcial
	// (un ciclo growing por estanque); la violación se traduce a
	// domain.ErrCycleAlreadyActive.
	Create(cycle *entity.Cycle) error
	GetByID(id string) (*entity.Cycle, error)
	// GetForUpdate obtiene el ciclo bloqueando su fila (SELECT FOR UPDATE)
	// hasta el fin de la transacción. Es el punto de serialización de los
	// escritores del ledger: la fila del ciclo es estable, así que el
	// segundo escritor que despierte del bloqueo relee un estado ya
	// comprometido en vez de operar sobre un snapshot viejo.
	GetForUpdate(id string) (*entity.Cycle, error)
	// GetActiveByPond devuelve el ciclo en estado growing del estanque,
	// o nil si no hay ninguno.
	GetActiveByPond(pondID string) (*entity.Cycle, error)
	SetOpeningMovement(cycleID, movementID string) error
	UpdateStatus(cycleID, status string) error
	ListByPond(pondID string, limit, offset int) ([]*entity.Cycle, error)
}
