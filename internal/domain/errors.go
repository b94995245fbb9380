package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNotConfirmed       = errors.New("la acción requiere confirmación")
	ErrPolicyDenied       = errors.New("la política de roles no permite la acción")
	ErrBackendUnavailable = errors.New("backend no disponible")
	ErrMalformedResponse  = errors.New("respuesta del backend mal formada")
)

// RemoteError error devuelto por el backend. ServerMessage es el texto del servidor
// ("" cuando no envió ninguno) y StatusCode el status HTTP de la respuesta.
type RemoteError interface {
	error
	StatusCode() int
	ServerMessage() string
}
