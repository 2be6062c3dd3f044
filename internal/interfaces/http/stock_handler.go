package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labops-api/internal/application/dto"
	"github.com/jhoicas/labops-api/internal/application/inventory"
	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de existencias de insumos.
type StockHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		LabID:             s.LabID,
		ConsumableID:      s.ConsumableID,
		ReceivedQuantity:  s.ReceivedQuantity,
		UsedQuantity:      s.UsedQuantity,
		RemainingQuantity: s.RemainingQuantity,
		Unit:              s.Unit,
		MinThreshold:      s.MinThreshold,
		Expiry:            s.Expiry,
		BatchID:           s.BatchID,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toStockResponses(list []*entity.Stock) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockResponse(s))
	}
	return out
}

// List godoc
// @Summary      Listar existencias de un laboratorio
// @Tags         stock
// @Produce      json
// @Param        lab_id  query  string  true  "ID del laboratorio"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.ListByLab(c.Context(), c.Query("lab_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// ListLow godoc
// @Summary      Existencias bajo el umbral mínimo
// @Tags         stock
// @Produce      json
// @Param        lab_id  query  string  true  "ID del laboratorio"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	list, err := h.ledger.ListBelowThreshold(c.Context(), c.Query("lab_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// RecordUsage godoc
// @Summary      Registrar consumo de un insumo
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordUsageRequest  true  "lab_id, consumable_id, quantity"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/usage [post]
func (h *StockHandler) RecordUsage(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.ledger.RecordUsage(c.Context(), in.LabID, in.ConsumableID, in.Quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

// Configure godoc
// @Summary      Configurar umbral, vencimiento y lote de una existencia
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockConfigRequest  true  "lab_id, consumable_id, min_threshold, expiry opcional (2006-01-02), batch_id"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/config [put]
func (h *StockHandler) Configure(c *fiber.Ctx) error {
	var in dto.StockConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var expiry *time.Time
	if in.Expiry != "" {
		parsed, err := time.Parse("2006-01-02", in.Expiry)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiry inválido, formato 2006-01-02"})
		}
		expiry = &parsed
	}
	stock, err := h.ledger.Configure(c.Context(), in.LabID, in.ConsumableID, in.MinThreshold, expiry, in.BatchID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}
