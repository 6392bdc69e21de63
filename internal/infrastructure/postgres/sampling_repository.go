package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

var _ repository.SamplingRepository = (*SamplingRepo)(nil)

// SamplingRepo implementación de SamplingRepository sobre PostgreSQL (usable con pool o tx).
type SamplingRepo struct {
	q Querier
}

// NewSamplingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSamplingRepository(q Querier) *SamplingRepo {
	return &SamplingRepo{q: q}
}

const samplingColumns = `id, pond_id, cycle_id, sampling_date, sample_size, avg_weight_gram, mortality_count, note, created_by, created_at`

// Create persiste un muestreo de crecimiento.
func (r *SamplingRepo) Create(s *entity.Sampling) error {
	query := `
		INSERT INTO samplings (` + samplingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.PondID, s.CycleID, s.SamplingDate, s.SampleSize,
		s.AvgWeightGram, s.MortalityCount, nullable(s.Note),
		nullable(s.CreatedBy), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sampling: %w", err)
	}
	return nil
}

// GetByID obtiene un muestreo por ID.
func (r *SamplingRepo) GetByID(id string) (*entity.Sampling, error) {
	query := `SELECT ` + samplingColumns + ` FROM samplings WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	s, err := scanSampling(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sampling: %w", err)
	}
	return s, nil
}

// ListByCycle lista los muestreos de un ciclo, el más reciente primero.
func (r *SamplingRepo) ListByCycle(cycleID string, limit, offset int) ([]*entity.Sampling, error) {
	query := `
		SELECT ` + samplingColumns + `
		FROM samplings WHERE cycle_id = $1
		ORDER BY sampling_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, cycleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list samplings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sampling
	for rows.Next() {
		s, err := scanSampling(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sampling: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSampling(row pgx.Row) (*entity.Sampling, error) {
	var s entity.Sampling
	var note, createdBy *string
	if err := row.Scan(
		&s.ID, &s.PondID, &s.CycleID, &s.SamplingDate, &s.SampleSize,
		&s.AvgWeightGram, &s.MortalityCount, &note, &createdBy, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Note = deref(note)
	s.CreatedBy = deref(createdBy)
	return &s, nil
}
