package backend

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.HistoryLogRepository = (*HistoryLogAPI)(nil)

// HistoryLogAPI implementa HistoryLogRepository sobre /history-logs.
type HistoryLogAPI struct {
	c      *Client
	stream *http.Client // sin timeout: la conexión SSE vive hasta que se cancele el contexto
}

// NewHistoryLogAPI crea el adaptador.
func NewHistoryLogAPI(c *Client) *HistoryLogAPI {
	return &HistoryLogAPI{c: c, stream: &http.Client{}}
}

func (a *HistoryLogAPI) listAt(ctx context.Context, path string) ([]*entity.HistoryLog, error) {
	objs, err := a.c.list(ctx, path)
	if err != nil {
		return nil, err
	}
	out, err := mapList(objs, toHistoryLog)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return out, nil
}

func (a *HistoryLogAPI) List(ctx context.Context) ([]*entity.HistoryLog, error) {
	return a.listAt(ctx, "/history-logs")
}

func (a *HistoryLogAPI) ListUnread(ctx context.Context) ([]*entity.HistoryLog, error) {
	return a.listAt(ctx, "/history-logs/unread")
}

func (a *HistoryLogAPI) GetByID(ctx context.Context, id string) (*entity.HistoryLog, error) {
	path := "/history-logs/" + url.PathEscape(id)
	o, err := a.c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	l, err := mapOne(o, toHistoryLog)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return l, nil
}

type historyLogPayload struct {
	Username string `json:"username"`
	Action   string `json:"action"`
}

func (a *HistoryLogAPI) Create(ctx context.Context, in repository.HistoryLogWrite) (*entity.HistoryLog, error) {
	o, err := a.c.write(ctx, http.MethodPost, "/history-logs", historyLogPayload{Username: in.Username, Action: in.Action})
	if err != nil {
		return nil, err
	}
	l, err := mapOne(o, toHistoryLog)
	if err != nil {
		return nil, wrapDecode(http.MethodPost, "/history-logs", err)
	}
	return l, nil
}

func (a *HistoryLogAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "/history-logs/"+url.PathEscape(id))
}

func (a *HistoryLogAPI) MarkRead(ctx context.Context, id string) error {
	return a.c.call(ctx, request{method: http.MethodPatch, path: "/history-logs/" + url.PathEscape(id) + "/read"}, nil)
}

func (a *HistoryLogAPI) MarkUnread(ctx context.Context, id string) error {
	return a.c.call(ctx, request{method: http.MethodPatch, path: "/history-logs/" + url.PathEscape(id) + "/unread"}, nil)
}

// Subscribe abre /history-logs/stream (text/event-stream) y entrega cada evento a fn.
// Devuelve nil cuando ctx se cancela; cualquier otro corte es un error para que el llamador reconecte.
func (a *HistoryLogAPI) Subscribe(ctx context.Context, fn func(repository.HistoryLogEvent)) error {
	const path = "/history-logs/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.c.baseURL+apiBasePath+path, nil)
	if err != nil {
		return fmt.Errorf("backend: crear request GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if tok := a.c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := a.stream.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("backend: GET %s: %w: %w", path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if resp.StatusCode == http.StatusUnauthorized {
			if err := a.c.tokens.Invalidate(); err != nil {
				a.c.log.Error().Err(err).Msg("limpiar sesión tras 401")
			}
		}
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode), Method: http.MethodGet, Path: path}
	}

	err = readEvents(resp.Body, fn)
	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("backend: stream %s: %w: %w", path, domain.ErrBackendUnavailable, err)
}

// readEvents parsea text/event-stream: líneas "event:" y "data:", despacho en línea vacía.
// Los comentarios (":") y los campos id/retry se ignoran.
func readEvents(r io.Reader, fn func(repository.HistoryLogEvent)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var (
		name string
		data bytes.Buffer
	)
	dispatch := func() {
		if data.Len() == 0 && name == "" {
			return
		}
		ev := repository.HistoryLogEvent{Name: name, Data: bytes.TrimSuffix(bytes.Clone(data.Bytes()), []byte("\n"))}
		if ev.Name == "" {
			ev.Name = "message"
		}
		fn(ev)
		name = ""
		data.Reset()
	}
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			dispatch()
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
		}
	}
	return sc.Err()
}
