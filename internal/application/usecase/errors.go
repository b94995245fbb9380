package usecase

import (
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/policy"
)

// ConfirmationRequired la acción destructiva no fue confirmada. Prompt es el texto a mostrar.
type ConfirmationRequired struct {
	Prompt string
}

func (e *ConfirmationRequired) Error() string {
	return domain.ErrNotConfirmed.Error() + ": " + e.Prompt
}

func (e *ConfirmationRequired) Is(target error) bool { return target == domain.ErrNotConfirmed }

// PolicyError la política de roles negó la acción.
type PolicyError struct {
	Decision policy.Decision
}

func (e *PolicyError) Error() string { return e.Decision.Reason }

func (e *PolicyError) Is(target error) bool { return target == domain.ErrPolicyDenied }

// RedirectError error que además indica a qué pantalla volver (ej. detalle inexistente → listado).
type RedirectError struct {
	Err error
	To  string
}

func (e *RedirectError) Error() string { return e.Err.Error() }

func (e *RedirectError) Unwrap() error { return e.Err }

// MutationError fallo de una escritura en el backend. Fallback es el mensaje localizado
// que se muestra cuando el servidor no envió texto propio.
type MutationError struct {
	Fallback string
	Err      error
}

func (e *MutationError) Error() string { return e.Fallback + ": " + e.Err.Error() }

func (e *MutationError) Unwrap() error { return e.Err }

func mutationFailed(fallback string, err error) error {
	return &MutationError{Fallback: fallback, Err: err}
}
