package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labops-api/internal/application/alerting"
	"github.com/jhoicas/labops-api/internal/application/dto"
	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// AlertHandler maneja las peticiones HTTP de alertas.
type AlertHandler struct {
	uc *alerting.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerting.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Message:     a.Message,
		RecipientID: a.RecipientID,
		RelatedID:   a.RelatedID,
		Status:      a.Status,
		SentAt:      a.SentAt,
		CreatedAt:   a.CreatedAt,
	}
}

// List godoc
// @Summary      Listar alertas por estado
// @Tags         alerts
// @Produce      json
// @Param        status  query  string  true  "PENDING | SENT | FAILED | READ"
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByStatus(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar una alerta enviada como leída
// @Tags         alerts
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reset godoc
// @Summary      Devolver una alerta fallida a PENDING
// @Description  Vía de reentrega: el despachador no reintenta FAILED por sí solo.
// @Tags         alerts
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/reset [patch]
func (h *AlertHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
