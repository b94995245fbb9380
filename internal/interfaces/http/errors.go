package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Errors traduce errores de los casos de uso a respuestas HTTP.
type Errors struct {
	tr  *i18n.Translator
	log *logger.Logger
}

// NewErrors construye el traductor de errores.
func NewErrors(tr *i18n.Translator, log *logger.Logger) *Errors {
	return &Errors{tr: tr, log: log.Named("http")}
}

func fail(c *fiber.Ctx, status int, code, msg, redirect string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, Redirect: redirect})
}

// Respond escribe la respuesta de error. El mensaje del servidor se muestra tal cual cuando existe.
func (e *Errors) Respond(c *fiber.Ctx, err error) error {
	var confirm *usecase.ConfirmationRequired
	if errors.As(err, &confirm) {
		return fail(c, fiber.StatusPreconditionRequired, "CONFIRMATION_REQUIRED", confirm.Prompt, "")
	}
	var denied *usecase.PolicyError
	if errors.As(err, &denied) {
		return fail(c, fiber.StatusForbidden, "POLICY_DENIED", denied.Error(), "")
	}
	redirect := ""
	var redir *usecase.RedirectError
	if errors.As(err, &redir) {
		redirect = redir.To
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "LOGIN_REQUIRED", e.tr.T(i18n.MsgLoginRequired), "/login")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", e.message(err, e.tr.T(i18n.MsgForbidden)), redirect)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", e.message(err, e.tr.T(i18n.MsgNotFound)), redirect)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", e.message(err, e.tr.T(i18n.MsgInvalidInput)), "")
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", e.message(err, e.tr.T(i18n.MsgInternal)), "")
	case errors.Is(err, domain.ErrBackendUnavailable):
		e.log.Warn().Err(err).Str("path", c.Path()).Msg("backend no disponible")
		return fail(c, fiber.StatusBadGateway, "BACKEND_UNAVAILABLE", e.tr.T(i18n.MsgBackendUnavailable), "")
	case errors.Is(err, domain.ErrMalformedResponse):
		e.log.Error().Err(err).Str("path", c.Path()).Msg("respuesta del backend inválida")
		return fail(c, fiber.StatusBadGateway, "MALFORMED_RESPONSE", err.Error(), "")
	}

	// Status del backend sin equivalente de dominio (405, 500, ...).
	var remote domain.RemoteError
	if errors.As(err, &remote) {
		status := remote.StatusCode()
		if status < 400 || status >= 500 {
			status = fiber.StatusBadGateway
		}
		e.log.Warn().Err(err).Int("backend_status", remote.StatusCode()).Str("path", c.Path()).Msg("error del backend")
		return fail(c, status, "BACKEND_ERROR", e.message(err, e.tr.T(i18n.MsgInternal)), "")
	}
	e.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no clasificado")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", e.tr.T(i18n.MsgInternal), "")
}

// message texto para el usuario. Del backend: su mensaje tal cual, si no el localizado de la
// operación, si no generic. Los errores locales ya vienen redactados para el usuario.
func (e *Errors) message(err error, generic string) string {
	var remote domain.RemoteError
	fromBackend := errors.As(err, &remote)
	if fromBackend {
		if msg := remote.ServerMessage(); msg != "" {
			return msg
		}
	}
	var mut *usecase.MutationError
	if errors.As(err, &mut) {
		return mut.Fallback
	}
	if fromBackend {
		return generic
	}
	return err.Error()
}

// invalidBody respuesta para cuerpos que no se pueden decodificar.
func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", "")
}
