package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/xlsx"
)

// maxImageBytes tamaño máximo de la imagen adjunta a un producto.
const maxImageBytes = 5 << 20

// ProductHandler detalle, formularios e informe de existencias de productos.
type ProductHandler struct {
	uc   *usecase.ProductUseCase
	errs *Errors
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, errs *Errors) *ProductHandler {
	return &ProductHandler{uc: uc, errs: errs}
}

// parseForm acepta JSON o multipart/form-data (campo "image" opcional).
func parseForm(c *fiber.Ctx) (dto.ProductForm, *repository.ImageUpload, error) {
	var form dto.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return form, nil, err
	}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return form, nil, nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return form, nil, nil
	}
	if fh.Size > maxImageBytes {
		return form, nil, fiber.ErrRequestEntityTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return form, nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return form, nil, err
	}
	return form, &repository.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.ProductForm  true  "Datos del producto; imagen opcional en el campo image"
// @Success      201   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, img, err := parseForm(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), form, img)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de producto con formulario de edición y opciones
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  string           true  "ID del producto"
// @Param        body  body  dto.ProductForm  true  "Datos del producto"
// @Success      200   {object}  dto.ProductView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	form, img, err := parseForm(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), form, img)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// FormOptions godoc
// @Summary      Opciones de categoría, marca, unidad y ubicación para el formulario
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ReferenceOptions
// @Router       /api/products/options [get]
func (h *ProductHandler) FormOptions(c *fiber.Ctx) error {
	out, err := h.uc.FormOptions(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Productos de una ubicación
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.ProductView
// @Router       /api/locations/{id}/products [get]
func (h *ProductHandler) ListByLocation(c *fiber.Ctx) error {
	out, err := h.uc.ListByLocation(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// ExportInventory godoc
// @Summary      Descargar el informe de existencias visible como hoja de cálculo
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/export [get]
func (h *ProductHandler) ExportInventory(c *fiber.Ctx) error {
	data, err := h.uc.ExportInventory(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	c.Attachment(xlsx.FileName)
	c.Set(fiber.HeaderContentType, xlsx.ContentType)
	return c.Send(data)
}
