package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.CycleRepository = (*CycleRepo)(nil)

// CycleRepo implementación de CycleRepository sobre PostgreSQL (usable con pool o tx).
type CycleRepo struct {
	q Querier
}

// NewCycleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleRepository(q Querier) *CycleRepo {
	return &CycleRepo{q: q}
}

const cycleColumns = `id, pond_id, species, initial_quantity, stocking_date, status, opening_movement_id, created_at, updated_at, created_by`

// Create inserta el ciclo. La tabla lleva el índice único parcial
// ux_cycles_one_growing_per_pond (pond_id WHERE status = 'growing'): si
// dos aperturas compiten, la segunda recibe ErrCycleAlreadyActive aunque
// el chequeo de aplicación no la haya visto.
func (r *CycleRepo) Create(c *entity.Cycle) error {
	query := `
		INSERT INTO cycles (` + cycleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.PondID, c.Species, c.InitialQuantity, c.StockingDate,
		c.Status, nullable(c.OpeningMovementID), c.CreatedAt, c.UpdatedAt,
		nullable(c.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCycleAlreadyActive
		}
		return fmt.Errorf("create cycle: %w", err)
	}
	return nil
}

// GetByID obtiene un ciclo por ID.
func (r *CycleRepo) GetByID(id string) (*entity.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el ciclo bloqueando su fila hasta el Commit/Rollback
// de la transacción. El bloqueo va sobre la fila del ciclo (mutable y
// estable) y no sobre el último movimiento: en READ COMMITTED un lock
// sobre una fila que nunca cambia deja pasar a dos escritores con el
// mismo snapshot, porque los movimientos nuevos son filas nuevas que el
// recheck del bloqueo no relee.
func (r *CycleRepo) GetForUpdate(id string) (*entity.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetActiveByPond devuelve el ciclo growing del estanque, o nil si no hay.
func (r *CycleRepo) GetActiveByPond(pondID string) (*entity.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE pond_id = $1 AND status = $2`
	return r.scanOne(query, pondID, entity.CycleStatusGrowing)
}

// SetOpeningMovement guarda la referencia al movimiento seeding de apertura.
func (r *CycleRepo) SetOpeningMovement(cycleID, movementID string) error {
	query := `UPDATE cycles SET opening_movement_id = $1, updated_at = now() WHERE id = $2`
	_, err := r.q.Exec(context.Background(), query, movementID, cycleID)
	if err != nil {
		return fmt.Errorf("set opening movement: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del ciclo (growing → harvest → closed).
func (r *CycleRepo) UpdateStatus(cycleID, status string) error {
	query := `UPDATE cycles SET status = $1, updated_at = now() WHERE id = $2`
	_, err := r.q.Exec(context.Background(), query, status, cycleID)
	if err != nil {
		return fmt.Errorf("update cycle status: %w", err)
	}
	return nil
}

// ListByPond lista los ciclos de un estanque, el más reciente primero.
func (r *CycleRepo) ListByPond(pondID string, limit, offset int) ([]*entity.Cycle, error) {
	query := `
		SELECT ` + cycleColumns + `
		FROM cycles WHERE pond_id = $1
		ORDER BY stocking_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, pondID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cycles by pond: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CycleRepo) scanOne(query string, args ...any) (*entity.Cycle, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	c, err := scanCycle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	return c, nil
}

func scanCycle(row pgx.Row) (*entity.Cycle, error) {
	var c entity.Cycle
	var openingMovementID, createdBy *string
	var stockingDate time.Time
	if err := row.Scan(
		&c.ID, &c.PondID, &c.Species, &c.InitialQuantity, &stockingDate,
		&c.Status, &openingMovementID, &c.CreatedAt, &c.UpdatedAt, &createdBy,
	); err != nil {
		return nil, err
	}
	c.StockingDate = stockingDate
	c.OpeningMovementID = deref(openingMovementID)
	c.CreatedBy = deref(createdBy)
	return &c, nil
}
