package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.FarmRepository = (*FarmRepo)(nil)

// FarmRepo implementación de FarmRepository sobre PostgreSQL.
type FarmRepo struct {
	q Querier
}

// NewFarmRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmRepository(q Querier) *FarmRepo {
	return &FarmRepo{q: q}
}

const farmColumns = `id, name, tax_id, address, phone, created_at, updated_at`

// Create inserta una granja.
func (r *FarmRepo) Create(f *entity.Farm) error {
	query := `
		INSERT INTO farms (` + farmColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Name, nullable(f.TaxID), nullable(f.Address), nullable(f.Phone),
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create farm: %w", err)
	}
	return nil
}

// GetByID obtiene una granja por ID.
func (r *FarmRepo) GetByID(id string) (*entity.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	f, err := scanFarm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farm: %w", err)
	}
	return f, nil
}

// List lista granjas con paginación.
func (r *FarmRepo) List(limit, offset int) ([]*entity.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Farm
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFarm(row pgx.Row) (*entity.Farm, error) {
	var f entity.Farm
	var taxID, address, phone *string
	if err := row.Scan(&f.ID, &f.Name, &taxID, &address, &phone, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.TaxID = deref(taxID)
	f.Address = deref(address)
	f.Phone = deref(phone)
	return &f, nil
}
