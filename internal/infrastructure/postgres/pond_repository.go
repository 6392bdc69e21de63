package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.PondRepository = (*PondRepo)(nil)

// PondRepo implementación de PondRepository sobre PostgreSQL (usable con pool o tx).
type PondRepo struct {
	q Querier
}

// NewPondRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPondRepository(q Querier) *PondRepo {
	return &PondRepo{q: q}
}

const pondColumns = `id, farm_id, name, area_m2, location, status, created_at, updated_at`

// Create inserta un estanque.
func (r *PondRepo) Create(p *entity.Pond) error {
	query := `
		INSERT INTO ponds (` + pondColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.FarmID, p.Name, p.AreaM2, nullable(p.Location), p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create pond: %w", err)
	}
	return nil
}

// GetByID obtiene un estanque por ID.
func (r *PondRepo) GetByID(id string) (*entity.Pond, error) {
	query := `SELECT ` + pondColumns + ` FROM ponds WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	p, err := scanPond(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pond: %w", err)
	}
	return p, nil
}

// ListByFarm lista estanques de una granja con paginación.
func (r *PondRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Pond, error) {
	query := `
		SELECT ` + pondColumns + `
		FROM ponds WHERE farm_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, farmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ponds: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pond
	for rows.Next() {
		p, err := scanPond(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pond: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, área, ubicación y estado del estanque.
func (r *PondRepo) Update(p *entity.Pond) error {
	query := `
		UPDATE ponds SET name = $1, area_m2 = $2, location = $3, status = $4, updated_at = now()
		WHERE id = $5`
	_, err := r.q.Exec(context.Background(), query,
		p.Name, p.AreaM2, nullable(p.Location), p.Status, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update pond: %w", err)
	}
	return nil
}

func scanPond(row pgx.Row) (*entity.Pond, error) {
	var p entity.Pond
	var location *string
	if err := row.Scan(
		&p.ID, &p.FarmID, &p.Name, &p.AreaM2, &location, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Location = deref(location)
	return &p, nil
}
