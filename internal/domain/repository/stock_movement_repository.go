package repository

import (
	"time"

	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de
// existencias. Append-only: no expone update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// GetLast devuelve el último movimiento del (estanque, ciclo) ordenado
	// por (event_date, created_at), o nil si el ciclo no tiene movimientos.
	// No bloquea: dentro del motor se llama después de tomar el lock del
	// ciclo (CycleRepository.GetForUpdate), fuera de él es solo consulta.
	GetLast(pondID, cycleID string) (*entity.StockMovement, error)
	ListByCycle(cycleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByPond(pondID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
