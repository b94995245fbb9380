package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/notification"
)

// DashboardHandler maneja los endpoints del inicio: tarjetas y contador de notificaciones.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	poller *notification.Poller
	errs   *Errors
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, poller *notification.Poller, errs *Errors) *DashboardHandler {
	return &DashboardHandler{uc: uc, poller: poller, errs: errs}
}

// GetSummary devuelve las tarjetas del inicio.
// GET /api/dashboard/summary
//
// Respuesta: DashboardStats (products, staff, imports_today, exports_today, date_label).
// Para roles distintos de admin visible=false y los contadores en cero.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(summary)
}

// Notifications devuelve el último contador de entradas no leídas.
// GET /api/notifications
//
// El valor lo mantiene el sondeo en segundo plano; ?refresh=true fuerza una consulta inmediata.
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.poller.PollOnce(c.UserContext()); err != nil {
			return h.errs.Respond(c, err)
		}
	}
	return c.JSON(h.poller.Status())
}
