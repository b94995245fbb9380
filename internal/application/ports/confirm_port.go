package ports

import "context"

// Confirmer pide confirmación explícita al operador antes de una acción destructiva.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed confirmación ya resuelta por la interfaz (ej. ?confirm=true en la petición).
func Confirmed(ok bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool { return ok })
}
