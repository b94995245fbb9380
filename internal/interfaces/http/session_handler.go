package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// SessionHandler login, logout y estado de la sesión local.
type SessionHandler struct {
	uc   *auth.AuthUseCase
	tr   *i18n.Translator
	errs *Errors
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(uc *auth.AuthUseCase, tr *i18n.Translator, errs *Errors) *SessionHandler {
	return &SessionHandler{uc: uc, tr: tr, errs: errs}
}

// Login godoc
// @Summary      Iniciar sesión contra el backend
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password, remember"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return fail(c, fiber.StatusUnauthorized, "LOGIN_FAILED", h.errs.message(err, h.tr.T(i18n.MsgLoginFailed)), "")
		}
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (limpia ambos ámbitos)
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(h.uc.Current())
}

// Current godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(h.uc.Current())
}
