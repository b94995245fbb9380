package repository

import "context"

// LoginResult respuesta del backend al iniciar sesión. Role/Username/Email pueden venir vacíos.
type LoginResult struct {
	Token    string
	Role     string
	Username string
	Email    string
}

// AuthRepository puerto hacia el endpoint de login del backend.
type AuthRepository interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
