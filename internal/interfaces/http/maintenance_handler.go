package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labops-api/internal/application/dto"
	"github.com/jhoicas/labops-api/internal/application/maintenance"
	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// MaintenanceHandler maneja las peticiones HTTP de mantenimientos de equipos.
type MaintenanceHandler struct {
	uc *maintenance.UseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

func toMaintenanceResponse(m *entity.MaintenanceRecord) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		ID:                  m.ID,
		EquipmentID:         m.EquipmentID,
		Type:                m.Type,
		Frequency:           m.Frequency,
		EffectiveDate:       m.EffectiveDate,
		LastMaintenanceDate: m.LastMaintenanceDate,
		NextMaintenanceDate: m.NextMaintenanceDate,
		Status:              m.Status,
		Active:              m.Active,
		TechnicianID:        m.TechnicianID,
	}
}

func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", s)
	return d, err == nil
}

// Create godoc
// @Summary      Crear registro de mantenimiento
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaintenanceRequest  true  "equipment_id, type, frequency, effective_date (2006-01-02)"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	effective, ok := parseDate(in.EffectiveDate)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_date inválida, formato 2006-01-02"})
	}
	record, err := h.uc.Create(c.Context(), maintenance.CreateInput{
		EquipmentID:   in.EquipmentID,
		Type:          in.Type,
		Frequency:     in.Frequency,
		EffectiveDate: effective,
		Status:        in.Status,
		TechnicianID:  in.TechnicianID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaintenanceResponse(record))
}

// GetByID godoc
// @Summary      Obtener registro de mantenimiento por id
// @Tags         maintenance
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.MaintenanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id} [get]
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toMaintenanceResponse(record))
}

// List godoc
// @Summary      Listar mantenimientos de un equipo
// @Tags         maintenance
// @Produce      json
// @Param        equipment_id  query  string  true  "ID del equipo"
// @Success      200  {array}  dto.MaintenanceResponse
// @Router       /api/maintenance [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListByEquipment(c.Context(), c.Query("equipment_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MaintenanceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMaintenanceResponse(m))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de un mantenimiento
// @Description  COMPLETED fija la última fecha y calcula la próxima según la frecuencia.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateMaintenanceStatusRequest  true  "status, effective_date (2006-01-02)"
// @Success      200   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/status [patch]
func (h *MaintenanceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateMaintenanceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	effective, ok := parseDate(in.EffectiveDate)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_date inválida, formato 2006-01-02"})
	}
	record, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, effective)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toMaintenanceResponse(record))
}

// Deactivate godoc
// @Summary      Desactivar un mantenimiento
// @Description  El registro queda fuera del alcance del escaneo de recordatorios.
// @Tags         maintenance
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/deactivate [patch]
func (h *MaintenanceHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
