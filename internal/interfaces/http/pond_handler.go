package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain"
)

// PondHandler maneja el registro de estanques de la granja.
type PondHandler struct {
	uc *usecase.PondUseCase
}

func NewPondHandler(uc *usecase.PondUseCase) *PondHandler {
	return &PondHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un estanque
// @Tags         ponds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePondRequest  true  "name, area_m2, location"
// @Success      201   {object}  dto.PondResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ponds [post]
func (h *PondHandler) Create(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePondRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pond, err := h.uc.Create(farmID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(pond)
}

// Get godoc
// @Summary      Consultar un estanque
// @Tags         ponds
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del estanque"
// @Success      200  {object}  dto.PondResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ponds/{id} [get]
func (h *PondHandler) Get(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pond, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if pond == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estanque no encontrado"})
	}
	if pond.FarmID != farmID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.JSON(pond)
}

// List godoc
// @Summary      Listar estanques de la granja
// @Tags         ponds
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PondResponse
// @Router       /api/ponds [get]
func (h *PondHandler) List(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(farmID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"ponds": list,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
