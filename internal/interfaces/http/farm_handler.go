package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain"
)

// FarmHandler maneja el registro de granjas (alta pública, lecturas
// protegidas).
type FarmHandler struct {
	uc *usecase.FarmUseCase
}

func NewFarmHandler(uc *usecase.FarmUseCase) *FarmHandler {
	return &FarmHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una granja
// @Tags         farms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmRequest  true  "name, tax_id"
// @Success      201   {object}  dto.FarmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/farms [post]
func (h *FarmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFarmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	farm, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(farm)
}

// Get godoc
// @Summary      Consultar la granja del usuario autenticado
// @Tags         farms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FarmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farms/me [get]
func (h *FarmHandler) Get(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	farm, err := h.uc.GetByID(farmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if farm == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "granja no encontrada"})
	}
	return c.JSON(farm)
}
