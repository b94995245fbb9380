package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// HistoryLogHandler registro de actividad: detalle, alta y marcas de lectura (solo admin).
type HistoryLogHandler struct {
	uc   *usecase.HistoryLogUseCase
	errs *Errors
}

// NewHistoryLogHandler construye el handler.
func NewHistoryLogHandler(uc *usecase.HistoryLogUseCase, errs *Errors) *HistoryLogHandler {
	return &HistoryLogHandler{uc: uc, errs: errs}
}

// GetByID godoc
// @Summary      Entrada del registro de actividad
// @Tags         history-logs
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.HistoryLogView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/history-logs/{id} [get]
func (h *HistoryLogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar una acción manualmente
// @Tags         history-logs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHistoryLogRequest  true  "usuario (opcional) y acción"
// @Success      201   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/history-logs [post]
func (h *HistoryLogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHistoryLogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Tags         history-logs
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.HistoryLogView
// @Router       /api/history-logs/{id}/read [put]
func (h *HistoryLogHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// MarkUnread godoc
// @Summary      Marcar como no leída
// @Tags         history-logs
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.HistoryLogView
// @Router       /api/history-logs/{id}/unread [put]
func (h *HistoryLogHandler) MarkUnread(c *fiber.Ctx) error {
	out, err := h.uc.MarkUnread(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
