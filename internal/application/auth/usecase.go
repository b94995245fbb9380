package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/jwt"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// AuthUseCase casos de uso de autenticación de la consola: login y logout contra el backend.
type AuthUseCase struct {
	repo    repository.AuthRepository
	session *session.Session
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.AuthRepository, sess *session.Session, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{repo: repo, session: sess, log: log.Named("auth")}
}

// Login valida credenciales contra el backend y guarda el perfil en el ámbito elegido.
// Si el backend no informa rol o usuario se leen de los claims del token.
// Credenciales rechazadas devuelven ErrUnauthorized sin tocar la sesión previa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	res, err := uc.repo.Login(ctx, username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, err
	}
	if res == nil || res.Token == "" {
		return nil, fmt.Errorf("%w: login sin token", domain.ErrMalformedResponse)
	}
	p := session.Profile{
		Token:    res.Token,
		Role:     entity.NormalizeRole(res.Role),
		Username: res.Username,
		Email:    res.Email,
	}
	if p.Role == "" || p.Username == "" || p.Email == "" {
		if info, err := jwt.Inspect(res.Token); err == nil {
			if p.Role == "" {
				p.Role = entity.NormalizeRole(info.Role)
			}
			if p.Username == "" {
				p.Username = info.Username
			}
			if p.Email == "" {
				p.Email = info.Email
			}
		}
	}
	if p.Username == "" {
		p.Username = username
	}
	if err := uc.session.Login(p, in.Remember); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", p.Username).Str("role", p.Role).Bool("remember", in.Remember).Msg("sesión iniciada")
	return uc.Current(), nil
}

// Logout borra la sesión de ambos ámbitos.
func (uc *AuthUseCase) Logout() error {
	p, _ := uc.session.Profile()
	if err := uc.session.Logout(); err != nil {
		return err
	}
	uc.log.Info().Str("username", p.Username).Msg("sesión cerrada")
	return nil
}

// Current estado actual de la sesión.
func (uc *AuthUseCase) Current() *dto.SessionResponse {
	p, ok := uc.session.Profile()
	if !ok {
		return &dto.SessionResponse{}
	}
	return &dto.SessionResponse{
		Authenticated: true,
		Role:          p.Role,
		Username:      p.Username,
		Email:         p.Email,
		Remembered:    uc.session.Remembered(),
	}
}
