package repository

import "github.com/jhoicas/Acuicola-api/internal/domain/entity"

// SamplingRepository define el puerto de persistencia de muestreos de crecimiento.
type SamplingRepository interface {
	Create(sampling *entity.Sampling) error
	GetByID(id string) (*entity.Sampling, error)
	ListByCycle(cycleID string, limit, offset int) ([]*entity.Sampling, error)
}
