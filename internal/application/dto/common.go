package dto

// ErrorResponse cuerpo de error HTTP. Redirect indica a dónde debe volver la interfaz (ej. /login).
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// MutationResult resultado de un alta o edición: ID creado y ruta a la que navegar.
type MutationResult struct {
	ID       string `json:"id,omitempty"`
	Redirect string `json:"redirect"`
}

// DeleteResult resultado de un borrado confirmado.
type DeleteResult struct {
	ID       string `json:"id"`
	Redirect string `json:"redirect,omitempty"`
}
