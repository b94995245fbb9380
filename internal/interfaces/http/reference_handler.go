package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ReferenceHandler CRUD de categorías, marcas, unidades y ubicaciones.
type ReferenceHandler struct {
	uc   *usecase.ReferenceUseCase
	errs *Errors
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, errs *Errors) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, errs: errs}
}

func (h *ReferenceHandler) kind(c *fiber.Ctx) (entity.ReferenceKind, error) {
	return usecase.ParseReferenceKind(c.Params("kind"))
}

// List godoc
// @Summary      Listar referencias de un tipo
// @Tags         references
// @Produce      json
// @Param        kind  path  string  true  "categories | brands | units | locations"
// @Success      200   {array}   dto.ReferenceView
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/references/{kind} [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	out, err := h.uc.List(c.UserContext(), kind)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear referencia
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        kind  path  string                true  "tipo"
// @Param        body  body  dto.ReferenceRequest  true  "nombre, slug, descripción"
// @Success      201   {object}  dto.ReferenceView
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/references/{kind} [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), kind, in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar referencia
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        kind  path  string                true  "tipo"
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.ReferenceRequest  true  "nombre, slug, descripción"
// @Success      200   {object}  dto.ReferenceView
// @Router       /api/references/{kind}/{id} [put]
func (h *ReferenceHandler) Update(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), kind, c.Params("id"), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar referencia (requiere ?confirm=true)
// @Tags         references
// @Produce      json
// @Param        kind     path   string  true   "tipo"
// @Param        id       path   string  true   "ID"
// @Param        confirm  query  bool    false  "confirmación explícita"
// @Success      200      {object}  dto.DeleteResult
// @Failure      428      {object}  dto.ErrorResponse
// @Router       /api/references/{kind}/{id} [delete]
func (h *ReferenceHandler) Delete(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), kind, c.Params("id"), ports.Confirmed(c.QueryBool("confirm")))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
