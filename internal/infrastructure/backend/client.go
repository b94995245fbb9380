// Package backend implementa los puertos de repositorio contra la API REST del almacén.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

const (
	apiBasePath     = "/api"
	maxResponseBody = 8 << 20
	requestIDHeader = "X-Request-ID"
)

// TokenSource fuente del bearer token y destino de la invalidación tras un 401.
// La implementa *session.Session.
type TokenSource interface {
	Token() string
	Invalidate() error
}

// APIError respuesta no-2xx del backend. Message es el texto del servidor.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// StatusCode status HTTP de la respuesta.
func (e *APIError) StatusCode() int { return e.Status }

// ServerMessage texto del servidor; vacío si solo hay el texto genérico del status.
func (e *APIError) ServerMessage() string {
	if e.Message == http.StatusText(e.Status) {
		return ""
	}
	return e.Message
}

// Is traduce el status HTTP a los errores de dominio.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrInvalidInput:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

// Client cliente HTTP del backend. Lee el token de la sesión en cada llamada.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger
}

// NewClient construye el cliente con el timeout configurado.
func NewClient(cfg config.BackendConfig, tokens TokenSource, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		tokens:     tokens,
		log:        log,
	}
}

// BaseURL raíz del backend (sin /api).
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// public: un 401 aquí es credencial inválida, no sesión vencida.
	public bool
}

func jsonRequest(method, path string, in any) (request, error) {
	r := request{method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return r, fmt.Errorf("backend: serializar %s %s: %w", method, path, err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = "application/json"
	}
	return r, nil
}

// send ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+apiBasePath+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request %s %s: %w", r.method, r.path, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	if tok := c.tokens.Token(); tok != "" && !r.public {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: %s %s: %w", r.method, r.path, ctx.Err())
		}
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Str("request_id", reqID).Msg("backend inaccesible")
		return nil, fmt.Errorf("backend: %s %s: %w: %w", r.method, r.path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta %s %s: %w: %w", r.method, r.path, domain.ErrBackendUnavailable, err)
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("duration", time.Since(start)).
		Msg("backend")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode), Method: r.method, Path: r.path}
	if resp.StatusCode == http.StatusUnauthorized && !r.public {
		if err := c.tokens.Invalidate(); err != nil {
			c.log.Error().Err(err).Msg("limpiar sesión tras 401")
		}
	}
	return nil, apiErr
}

// call ejecuta y decodifica la respuesta JSON en out (nil = ignorar cuerpo).
func (c *Client) call(ctx context.Context, r request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decodificar %s %s: %w: %w", r.method, r.path, domain.ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.call(ctx, request{method: http.MethodGet, path: path}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	r, err := jsonRequest(method, path, in)
	if err != nil {
		return err
	}
	return c.call(ctx, r, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.call(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// errorMessage extrae el texto del servidor: campo message/error de un JSON, o el cuerpo crudo.
func errorMessage(raw []byte, status int) string {
	body := bytes.TrimSpace(raw)
	if len(body) > 0 {
		var obj map[string]any
		if json.Unmarshal(body, &obj) == nil {
			for _, k := range []string{"message", "error", "detail"} {
				if s, ok := obj[k].(string); ok && s != "" {
					return s
				}
			}
		} else {
			var s string
			if json.Unmarshal(body, &s) == nil && s != "" {
				return s
			}
			if !bytes.HasPrefix(body, []byte("<")) {
				return truncate(string(body), 500)
			}
		}
	}
	return http.StatusText(status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// IsNetworkError indica si err proviene de no poder hablar con el backend.
func IsNetworkError(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable)
}
