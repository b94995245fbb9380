package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// viewRoles vistas restringidas por rol. Las demás las ve cualquier sesión.
var viewRoles = map[string][]string{
	usecase.ViewStaff:       {entity.RoleAdmin, entity.RoleManager},
	usecase.ViewHistoryLogs: {entity.RoleAdmin},
}

// ViewHandler operaciones uniformes sobre las vistas de lista (filtro, orden, paginación, borrado).
type ViewHandler struct {
	ws   *usecase.Workspace
	errs *Errors
}

// NewViewHandler construye el handler de vistas.
func NewViewHandler(ws *usecase.Workspace, errs *Errors) *ViewHandler {
	return &ViewHandler{ws: ws, errs: errs}
}

// view resuelve :name y comprueba el rol. Escribe la respuesta de error si no procede.
func (h *ViewHandler) view(c *fiber.Ctx) (usecase.View, error) {
	name := c.Params("name")
	v, ok := h.ws.View(name)
	if !ok {
		return nil, fail(c, fiber.StatusNotFound, "VIEW_NOT_FOUND", "vista desconocida: "+name, "")
	}
	if roles, restricted := viewRoles[name]; restricted {
		role := GetRole(c)
		for _, r := range roles {
			if r == role {
				return v, nil
			}
		}
		return nil, fail(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a esta sección", "/")
	}
	return v, nil
}

func (h *ViewHandler) load(c *fiber.Ctx, v usecase.View) error {
	out, err := v.Load(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Estado derivado de una vista (carga la primera vez)
// @Tags         views
// @Produce      json
// @Param        name  path  string  true  "products | inventory | staff | import-receipts | export-receipts | history-logs"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/views/{name} [get]
func (h *ViewHandler) Get(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	return h.load(c, v)
}

// Refresh godoc
// @Summary      Recargar las filas desde el backend conservando consulta y orden
// @Tags         views
// @Produce      json
// @Param        name  path  string  true  "nombre de la vista"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/views/{name}/refresh [post]
func (h *ViewHandler) Refresh(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	out, err := v.Refresh(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// SetQuery godoc
// @Summary      Fijar búsqueda, filtros y rango de fechas (vuelve a la página 1)
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        name  path  string                true  "nombre de la vista"
// @Param        body  body  dto.ViewQueryRequest  true  "criterios"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/views/{name}/query [put]
func (h *ViewHandler) SetQuery(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	var in dto.ViewQueryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := v.SetQuery(in); err != nil {
		return h.errs.Respond(c, err)
	}
	return h.load(c, v)
}

// SetSort godoc
// @Summary      Fijar o alternar el orden
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        name  path  string           true  "nombre de la vista"
// @Param        body  body  dto.SortRequest  true  "campo y dirección, o toggle"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/views/{name}/sort [put]
func (h *ViewHandler) SetSort(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	var in dto.SortRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := v.SetSort(in); err != nil {
		return h.errs.Respond(c, err)
	}
	return h.load(c, v)
}

// SetPagination godoc
// @Summary      Cambiar de página o de filas por página
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        name  path  string                 true  "nombre de la vista"
// @Param        body  body  dto.PaginationRequest  true  "página, tamaño o mes"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/views/{name}/pagination [put]
func (h *ViewHandler) SetPagination(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	var in dto.PaginationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := v.SetPagination(in); err != nil {
		return h.errs.Respond(c, err)
	}
	return h.load(c, v)
}

// DeleteRow godoc
// @Summary      Borrar una fila (requiere ?confirm=true)
// @Tags         views
// @Produce      json
// @Param        name     path   string  true   "nombre de la vista"
// @Param        id       path   string  true   "ID de la fila"
// @Param        confirm  query  bool    false  "confirmación explícita"
// @Success      200      {object}  dto.DeleteResult
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      428      {object}  dto.ErrorResponse
// @Router       /api/views/{name}/rows/{id} [delete]
func (h *ViewHandler) DeleteRow(c *fiber.Ctx) error {
	v, err := h.view(c)
	if v == nil {
		return err
	}
	id := c.Params("id")
	if id == "" {
		return h.errs.Respond(c, domain.ErrInvalidInput)
	}
	out, err := v.DeleteRow(c.UserContext(), id, ports.Confirmed(c.QueryBool("confirm")))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
