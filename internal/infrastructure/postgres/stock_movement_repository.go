package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de existencias sobre
// PostgreSQL (usable con pool o tx). La tabla stock_movements es
// append-only: este adaptador no expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, pond_id, cycle_id, kind, quantity, balance, event_date, ref_table, ref_id, note, created_by, created_at`

// Create persiste un movimiento con su saldo ya calculado.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PondID, m.CycleID, m.Kind, m.Quantity, m.Balance,
		m.EventDate, nullable(m.RefTable), nullable(m.RefID), nullable(m.Note),
		nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetLast devuelve el último movimiento del (estanque, ciclo), o nil si
// el ciclo no tiene movimientos. El motor lo llama con el lock del ciclo
// ya tomado, así que el snapshot de esta consulta es posterior a cualquier
// escritor que haya soltado ese lock.
func (r *StockMovementRepo) GetLast(pondID, cycleID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE pond_id = $1 AND cycle_id = $2
		ORDER BY event_date DESC, created_at DESC
		LIMIT 1`
	return r.scanOne(query, pondID, cycleID)
}

// ListByCycle lista movimientos de un ciclo en un rango de fechas.
func (r *StockMovementRepo) ListByCycle(cycleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE cycle_id = $1`
	args := []any{cycleID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY event_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListByPond lista movimientos de un estanque a través de todos sus ciclos.
func (r *StockMovementRepo) ListByPond(pondID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE pond_id = $1`
	args := []any{pondID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY event_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND event_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND event_date <= $%d", len(args))
	}
	return query, args
}

func (r *StockMovementRepo) scanOne(query string, args ...any) (*entity.StockMovement, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refTable, refID, note, createdBy *string
	if err := row.Scan(
		&m.ID, &m.PondID, &m.CycleID, &m.Kind, &m.Quantity, &m.Balance,
		&m.EventDate, &refTable, &refID, &note, &createdBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.RefTable = deref(refTable)
	m.RefID = deref(refID)
	m.Note = deref(note)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
