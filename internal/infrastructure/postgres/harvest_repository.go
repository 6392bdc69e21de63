package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.HarvestRepository = (*HarvestRepo)(nil)

// HarvestRepo implementación de HarvestRepository sobre PostgreSQL (usable con pool o tx).
type HarvestRepo struct {
	q Querier
}

// NewHarvestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHarvestRepository(q Querier) *HarvestRepo {
	return &HarvestRepo{q: q}
}

const harvestColumns = `id, pond_id, cycle_id, harvest_date, quantity, kind, total_weight_kg, note, created_by, created_at`

// Create persiste una cosecha.
func (r *HarvestRepo) Create(h *entity.Harvest) error {
	query := `
		INSERT INTO harvests (` + harvestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.PondID, h.CycleID, h.HarvestDate, h.Quantity, h.Kind,
		h.TotalWeightKg, nullable(h.Note), nullable(h.CreatedBy), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create harvest: %w", err)
	}
	return nil
}

// GetByID obtiene una cosecha por ID.
func (r *HarvestRepo) GetByID(id string) (*entity.Harvest, error) {
	query := `SELECT ` + harvestColumns + ` FROM harvests WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	h, err := scanHarvest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get harvest: %w", err)
	}
	return h, nil
}

// ListByCycle lista las cosechas de un ciclo, la más reciente primero.
func (r *HarvestRepo) ListByCycle(cycleID string, limit, offset int) ([]*entity.Harvest, error) {
	query := `
		SELECT ` + harvestColumns + `
		FROM harvests WHERE cycle_id = $1
		ORDER BY harvest_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, cycleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list harvests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Harvest
	for rows.Next() {
		h, err := scanHarvest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan harvest: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func scanHarvest(row pgx.Row) (*entity.Harvest, error) {
	var h entity.Harvest
	var note, createdBy *string
	if err := row.Scan(
		&h.ID, &h.PondID, &h.CycleID, &h.HarvestDate, &h.Quantity, &h.Kind,
		&h.TotalWeightKg, &note, &createdBy, &h.CreatedAt,
	); err != nil {
		return nil, err
	}
	h.Note = deref(note)
	h.CreatedBy = deref(createdBy)
	return &h, nil
}
