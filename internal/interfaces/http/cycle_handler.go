package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/cycle"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// CycleHandler maneja el ciclo de vida de los ciclos productivos.
type CycleHandler struct {
	uc *cycle.CycleUseCase
}

func NewCycleHandler(uc *cycle.CycleUseCase) *CycleHandler {
	return &CycleHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir un ciclo productivo (siembra)
// @Description  Crea el ciclo y su movimiento seeding de apertura en una
//
//	sola transacción. Falla con 409 si el estanque ya tiene un
//	ciclo en estado growing.
//
// @Tags         cycles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCycleRequest  true  "pond_id, species, initial_quantity, stocking_date"
// @Success      201   {object}  dto.CycleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cycles [post]
func (h *CycleHandler) Create(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	userID := GetUserID(c)
	if farmID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCycleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cy, err := h.uc.CreateCycle(c.Context(), farmID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCycleResponse(cy))
}

// Close godoc
// @Summary      Cerrar un ciclo
// @Tags         cycles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.CycleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cycles/{id}/close [post]
func (h *CycleHandler) Close(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	cy, err := h.uc.CloseCycle(c.Context(), farmID, c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toCycleResponse(cy))
}

// Get godoc
// @Summary      Consultar un ciclo
// @Tags         cycles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.CycleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycles/{id} [get]
func (h *CycleHandler) Get(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	cy, err := h.uc.GetCycle(farmID, c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toCycleResponse(cy))
}

// ListByPond godoc
// @Summary      Listar ciclos de un estanque
// @Tags         cycles
// @Security     Bearer
// @Produce      json
// @Param        pond_id  query  string  true  "Estanque (UUID)"
// @Success      200  {array}   dto.CycleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cycles [get]
func (h *CycleHandler) ListByPond(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pondID := c.Query("pond_id")
	if pondID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pond_id es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByPond(farmID, pondID, page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]dto.CycleResponse, 0, len(list))
	for _, cy := range list {
		items = append(items, *toCycleResponse(cy))
	}
	return c.JSON(fiber.Map{
		"total":  len(items),
		"cycles": items,
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toCycleResponse(cy *entity.Cycle) *dto.CycleResponse {
	return &dto.CycleResponse{
		ID:                cy.ID,
		PondID:            cy.PondID,
		Species:           cy.Species,
		InitialQuantity:   cy.InitialQuantity,
		StockingDate:      cy.StockingDate,
		Status:            cy.Status,
		OpeningMovementID: cy.OpeningMovementID,
		CreatedAt:         cy.CreatedAt,
	}
}
