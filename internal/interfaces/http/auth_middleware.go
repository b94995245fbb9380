package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// Locals keys para el rol y el usuario de la sesión en Fiber.
const (
	LocalRole     = "role"
	LocalUsername = "username"
)

// ProfileSource lectura del perfil de la sesión local.
type ProfileSource interface {
	Profile() (session.Profile, bool)
}

// RequireSession exige una sesión con token en alguno de los dos ámbitos y carga rol y usuario en c.Locals.
func RequireSession(sess ProfileSource, tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := sess.Profile()
		if !ok {
			return fail(c, fiber.StatusUnauthorized, "LOGIN_REQUIRED", tr.T(i18n.MsgLoginRequired), "/login")
		}
		c.Locals(LocalRole, entity.NormalizeRole(p.Role))
		c.Locals(LocalUsername, p.Username)
		return c.Next()
	}
}

// RequireRole exige que el rol de la sesión esté entre los permitidos. Va después de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[entity.NormalizeRole(r)] = true
	}
	return func(c *fiber.Ctx) error {
		if !allowed[GetRole(c)] {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a esta sección", "/")
		}
		return c.Next()
	}
}

// GetRole devuelve el rol del contexto (después de RequireSession).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetUsername devuelve el usuario del contexto (después de RequireSession).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}
