package repository

import "github.com/jhoicas/Acuicola-api/internal/domain/entity"

// FarmRepository define el puerto de persistencia de granjas (tenants).
type FarmRepository interface {
	Create(farm *entity.Farm) error
	GetByID(id string) (*entity.Farm, error)
	List(limit, offset int) ([]*entity.Farm, error)
}
