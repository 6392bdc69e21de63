package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/production"
)

// ProductionHandler maneja muestreos de crecimiento y cosechas.
type ProductionHandler struct {
	uc *production.ProductionUseCase
}

func NewProductionHandler(uc *production.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// RegisterSampling godoc
// @Summary      Registrar un muestreo de crecimiento
// @Description  Si mortality_count > 0 el muestreo y su movimiento
//
//	mortality comparten transacción: nunca queda uno sin el otro.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSamplingRequest  true  "muestreo"
// @Success      201   {object}  dto.SamplingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/samplings [post]
func (h *ProductionHandler) RegisterSampling(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	userID := GetUserID(c)
	if farmID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterSamplingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RegisterSampling(c.Context(), farmID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	s := res.Sampling
	return c.Status(fiber.StatusCreated).JSON(dto.SamplingResponse{
		ID:             s.ID,
		PondID:         s.PondID,
		CycleID:        s.CycleID,
		SamplingDate:   s.SamplingDate,
		SampleSize:     s.SampleSize,
		AvgWeightGram:  s.AvgWeightGram,
		MortalityCount: s.MortalityCount,
		Balance:        res.Balance,
		BiomassKg:      s.Biomass(res.Balance),
		CreatedAt:      s.CreatedAt,
	})
}

// RegisterHarvest godoc
// @Summary      Registrar una cosecha parcial o total
// @Description  Una cosecha total pasa el ciclo a estado harvest en la
//
//	misma transacción que el movimiento.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterHarvestRequest  true  "cosecha"
// @Success      201   {object}  dto.HarvestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/harvests [post]
func (h *ProductionHandler) RegisterHarvest(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	userID := GetUserID(c)
	if farmID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterHarvestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RegisterHarvest(c.Context(), farmID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	hv := res.Harvest
	return c.Status(fiber.StatusCreated).JSON(dto.HarvestResponse{
		ID:            hv.ID,
		PondID:        hv.PondID,
		CycleID:       hv.CycleID,
		HarvestDate:   hv.HarvestDate,
		Quantity:      hv.Quantity,
		Kind:          hv.Kind,
		TotalWeightKg: hv.TotalWeightKg,
		Balance:       res.Balance,
		CreatedAt:     hv.CreatedAt,
	})
}
