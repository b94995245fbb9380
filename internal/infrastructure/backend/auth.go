package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.AuthRepository = (*AuthAPI)(nil)

// AuthAPI implementa AuthRepository sobre POST /login.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI crea el adaptador.
func NewAuthAPI(c *Client) *AuthAPI { return &AuthAPI{c: c} }

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login envía credenciales. Un 401 aquí no toca la sesión: es un intento fallido.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*repository.LoginResult, error) {
	r, err := jsonRequest(http.MethodPost, "/login", loginPayload{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	r.public = true
	o, err := a.c.one(ctx, r)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("backend: POST /login: %w: respuesta vacía", domain.ErrMalformedResponse)
	}
	res := &repository.LoginResult{
		Token:    o.str("token", "accessToken", "access_token", "jwt"),
		Role:     strings.ToLower(o.str("role", "user.role")),
		Username: o.str("username", "user.username"),
		Email:    o.str("email", "user.email"),
	}
	if res.Token == "" {
		return nil, fmt.Errorf("backend: POST /login: %w: sin token", domain.ErrMalformedResponse)
	}
	return res, nil
}
