package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims que la consola lee del token emitido por el backend.
// El backend firma con su propio secreto; aquí solo se inspeccionan, nunca se validan.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Info datos útiles del token.
type Info struct {
	Subject   string
	Role      string
	Username  string
	Email     string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token venció en el instante now. Sin exp nunca vence.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodifica el token sin verificar la firma (la autoridad es el backend).
// Retorna error si el token no es un JWT bien formado.
func Inspect(tokenString string) (Info, error) {
	if tokenString == "" {
		return Info{}, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Info{}, fmt.Errorf("jwt: token mal formado: %w", err)
	}
	info := Info{
		Subject:  claims.Subject,
		Role:     claims.Role,
		Username: claims.Username,
		Email:    claims.Email,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Sign genera un token HS256 con los claims dados. Solo lo usan los tests y el backend simulado.
func Sign(secret string, claims Claims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewClaims claims con sujeto, rol y vencimiento relativo a now.
func NewClaims(subject, role string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     role,
		Username: subject,
	}
}
