package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// StaffHandler detalle y formularios de personal (admin y manager).
type StaffHandler struct {
	uc   *usecase.StaffUseCase
	errs *Errors
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *usecase.StaffUseCase, errs *Errors) *StaffHandler {
	return &StaffHandler{uc: uc, errs: errs}
}

// GetByID godoc
// @Summary      Detalle de un miembro del personal
// @Tags         staff
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.StaffRow
// @Failure      404  {object}  dto.ErrorResponse  "incluye redirect a /staff"
// @Router       /api/staff/{id} [get]
func (h *StaffHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// NextCode godoc
// @Summary      Próximo código de personal libre (STF###)
// @Tags         staff
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/staff/next-code [get]
func (h *StaffHandler) NextCode(c *fiber.Ctx) error {
	code, err := h.uc.NextStaffCode(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(fiber.Map{"staff_code": code})
}

// Create godoc
// @Summary      Alta de personal
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar personal
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del usuario"
// @Param        body  body  dto.UpdateStaffRequest  true  "Datos del usuario"
// @Success      200   {object}  dto.StaffRow
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [put]
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
