package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
)

// ReceiptHandler comprobantes de un tipo (entrada o salida): detalle, alta e impresión.
type ReceiptHandler struct {
	uc   *usecase.ReceiptUseCase
	errs *Errors
}

// NewReceiptHandler construye el handler para el caso de uso de un tipo de comprobante.
func NewReceiptHandler(uc *usecase.ReceiptUseCase, errs *Errors) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, errs: errs}
}

// GetByID godoc
// @Summary      Detalle de comprobante con líneas y decisión de borrado
// @Tags         receipts
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ReceiptDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/import-receipts/{id} [get]
// @Router       /api/export-receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// NewCode godoc
// @Summary      Código sugerido para un comprobante nuevo
// @Tags         receipts
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/import-receipts/new-code [get]
// @Router       /api/export-receipts/new-code [get]
func (h *ReceiptHandler) NewCode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"code": h.uc.NewCode()})
}

// Create godoc
// @Summary      Alta de comprobante
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import-receipts [post]
// @Router       /api/export-receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Print godoc
// @Summary      Versión imprimible (PDF) del comprobante
// @Tags         receipts
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/import-receipts/{id}/pdf [get]
// @Router       /api/export-receipts/{id}/pdf [get]
func (h *ReceiptHandler) Print(c *fiber.Ctx) error {
	data, filename, err := h.uc.Print(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
