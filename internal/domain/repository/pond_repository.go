package repository

import "github.com/jhoicas/Acuicola-api/internal/domain/entity"

// PondRepository define el puerto de persistencia de estanques.
type PondRepository interface {
	Create(pond *entity.Pond) error
	GetByID(id string) (*entity.Pond, error)
	ListByFarm(farmID string, limit, offset int) ([]*entity.Pond, error)
	Update(pond *entity.Pond) error
}
