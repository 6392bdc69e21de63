package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acuicola-api/internal/application/dto"
	"github.com/jhoicas/Acuicola-api/internal/application/ledger"
	"github.com/jhoicas/Acuicola-api/internal/application/usecase"
	"github.com/jhoicas/Acuicola-api/internal/domain"
	"github.com/jhoicas/Acuicola-api/internal/domain/entity"
)

// LedgerHandler maneja las peticiones HTTP del libro de existencias (protegido).
type LedgerHandler struct {
	uc     *ledger.LedgerUseCase
	pondUC *usecase.PondUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, pondUC *usecase.PondUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, pondUC: pondUC}
}

// RegisterMovement godoc
// @Summary      Registrar ajuste manual de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "pond_id, cycle_id, kind (adjustment|transfer_out|transfer_in), quantity, event_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [post]
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	userID := GetUserID(c)
	if farmID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterFromRequest(c.Context(), farmID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Transfer godoc
// @Summary      Trasladar población entre estanques (ambas patas en una transacción)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "origen, destino, quantity, event_date"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/transfers [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	userID := GetUserID(c)
	if farmID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.checkPondOwnership(farmID, in.FromPondID); err != nil {
		return ledgerError(c, err)
	}
	if err := h.checkPondOwnership(farmID, in.ToPondID); err != nil {
		return ledgerError(c, err)
	}
	groupID, err := h.uc.Transfer(c.Context(), ledger.TransferInput{
		FromPondID:  in.FromPondID,
		FromCycleID: in.FromCycleID,
		ToPondID:    in.ToPondID,
		ToCycleID:   in.ToCycleID,
		Quantity:    in.Quantity,
		EventDate:   in.EventDate,
		Note:        in.Note,
		UserID:      userID,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transfer_group_id": groupID})
}

// GetBalance godoc
// @Summary      Saldo vigente de un (estanque, ciclo)
// @Description  Lectura sin bloqueo: snapshot informativo para display
//
//	("stock actual: N"), no para decisiones que exijan consistencia
//	con escritores concurrentes.
//
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        pond_id   query  string  true  "Estanque (UUID)"
// @Param        cycle_id  query  string  true  "Ciclo (UUID)"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/balance [get]
func (h *LedgerHandler) GetBalance(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pondID := c.Query("pond_id")
	cycleID := c.Query("cycle_id")
	if pondID == "" || cycleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pond_id y cycle_id son requeridos"})
	}
	if err := h.checkPondOwnership(farmID, pondID); err != nil {
		return ledgerError(c, err)
	}
	balance, err := h.uc.GetBalance(pondID, cycleID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.BalanceResponse{PondID: pondID, CycleID: cycleID, Balance: balance})
}

// ListMovements godoc
// @Summary      Kardex de movimientos por ciclo o estanque
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        pond_id   query  string  true   "Estanque (UUID)"
// @Param        cycle_id  query  string  false  "Ciclo (UUID); vacío = todos los ciclos del estanque"
// @Param        from      query  string  false  "Fecha desde (RFC3339)"
// @Param        to        query  string  false  "Fecha hasta (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	farmID := GetFarmID(c)
	if farmID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pondID := c.Query("pond_id")
	if pondID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pond_id es requerido"})
	}
	if err := h.checkPondOwnership(farmID, pondID); err != nil {
		return ledgerError(c, err)
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from := parseDateQuery(c.Query("from"))
	to := parseDateQuery(c.Query("to"))

	var (
		list []*entity.StockMovement
		err  error
	)
	if cycleID := c.Query("cycle_id"); cycleID != "" {
		list, err = h.uc.ListByCycle(cycleID, from, to, page.Limit, page.Offset)
	} else {
		list, err = h.uc.ListByPond(pondID, from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(fiber.Map{
		"total":     len(items),
		"movements": items,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func (h *LedgerHandler) checkPondOwnership(farmID, pondID string) error {
	pond, err := h.pondUC.GetByID(pondID)
	if err != nil {
		return err
	}
	if pond == nil {
		return domain.ErrNotFound
	}
	if pond.FarmID != farmID {
		return domain.ErrForbidden
	}
	return nil
}

func parseDateQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// También acepta fecha simple YYYY-MM-DD
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil
		}
	}
	return &t
}

// ledgerError traduce errores de dominio del ledger a estados HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrZeroDelta:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ZERO_DELTA", Message: "el ajuste requiere un delta distinto de cero"})
	case domain.ErrUnknownEventKind:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_EVENT_KIND", Message: "tipo de evento desconocido"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estanque o ciclo no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrOutOfOrderEvent:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_ORDER_EVENT", Message: "evento fuera de orden cronológico"})
	case domain.ErrCycleAlreadyActive:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CYCLE_ALREADY_ACTIVE", Message: "el estanque ya tiene un ciclo activo"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		PondID:    m.PondID,
		CycleID:   m.CycleID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Balance:   m.Balance,
		EventDate: m.EventDate,
		RefTable:  m.RefTable,
		RefID:     m.RefID,
		Note:      m.Note,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
