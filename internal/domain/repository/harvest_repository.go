package repository

import "github.com/jhoicas/Acuicola-api/internal/domain/entity"

// HarvestRepository define el puerto de persistencia de cosechas.
type HarvestRepository interface {
	Create(harvest *entity.Harvest) error
	GetByID(id string) (*entity.Harvest, error)
	ListByCycle(cycleID string, limit, offset int) ([]*entity.Harvest, error)
}
