package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
	"github.com/jhoicas/Acuicola-api/internal/domain/repository"
)

// PondUseCase casos de uso CRUD para estanques.
type PondUseCase struct {
	repo repository.PondRepository
}

// NewPondUseCase construye el caso de uso.
func NewPondUseCase(repo repository.PondRepository) *PondUseCase {
	return &PondUseCase{repo: repo}
}

// Create crea un estanque para la granja.
func (uc *PondUseCase) Create(farmID string, in dto.CreatePondRequest) (*dto.PondResponse, error) {
	now := time.Now()
	pond := &entity.Pond{
		ID:        uuid.New().String(),
		FarmID:    farmID,
		Name:      in.Name,
		AreaM2:    in.AreaM2,
		Location:  in.Location,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(pond); err != nil {
		return nil, err
	}
	return toPondResponse(pond), nil
}

// GetByID obtiene un estanque por ID.
func (uc *PondUseCase) GetByID(id string) (*dto.PondResponse, error) {
	pond, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pond == nil {
		return nil, nil
	}
	return toPondResponse(pond), nil
}

// List lista los estanques de la granja con paginación.
func (uc *PondUseCase) List(farmID string, limit, offset int) ([]dto.PondResponse, error) {
	list, err := uc.repo.ListByFarm(farmID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PondResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPondResponse(p))
	}
	return items, nil
}

func toPondResponse(p *entity.Pond) *dto.PondResponse {
	return &dto.PondResponse{
		ID:        p.ID,
		FarmID:    p.FarmID,
		Name:      p.Name,
		AreaM2:    p.AreaM2,
		Location:  p.Location,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
