package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// FarmUseCase casos de uso CRUD para granjas (tenants).
type FarmUseCase struct {
	repo repository.FarmRepository
}

// NewFarmUseCase construye el caso de uso.
func NewFarmUseCase(repo repository.FarmRepository) *FarmUseCase {
	return &FarmUseCase{repo: repo}
}

// Create crea una granja.
func (uc *FarmUseCase) Create(in dto.CreateFarmRequest) (*dto.FarmResponse, error) {
	now := time.Now()
	farm := &entity.Farm{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(farm); err != nil {
		return nil, err
	}
	return toFarmResponse(farm), nil
}

// GetByID obtiene una granja por ID.
func (uc *FarmUseCase) GetByID(id string) (*dto.FarmResponse, error) {
	farm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, nil
	}
	return toFarmResponse(farm), nil
}

// List lista granjas con paginación.
func (uc *FarmUseCase) List(limit, offset int) ([]dto.FarmResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FarmResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFarmResponse(f))
	}
	return items, nil
}

func toFarmResponse(f *entity.Farm) *dto.FarmResponse {
	return &dto.FarmResponse{
		ID:        f.ID,
		Name:      f.Name,
		TaxID:     f.TaxID,
		Address:   f.Address,
		Phone:     f.Phone,
		CreatedAt: f.CreatedAt,
	}
}
