package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

func (c *Client) list(ctx context.Context, path string) ([]object, error) {
	raw, err := c.send(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	objs, err := decodeList(raw)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return objs, nil
}

// one ejecuta r y decodifica un objeto. Un cuerpo vacío devuelve nil sin error
// (algunos endpoints de alta responden 201 sin cuerpo).
func (c *Client) one(ctx context.Context, r request) (object, error) {
	raw, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	o, err := decodeObject(raw)
	if err != nil {
		return nil, wrapDecode(r.method, r.path, err)
	}
	return o, nil
}

func (c *Client) get(ctx context.Context, path string) (object, error) {
	return c.one(ctx, request{method: http.MethodGet, path: path})
}

func (c *Client) write(ctx context.Context, method, path string, in any) (object, error) {
	r, err := jsonRequest(method, path, in)
	if err != nil {
		return nil, err
	}
	return c.one(ctx, r)
}

// mapOne aplica fn a un objeto opcional.
func mapOne[T any](o object, fn func(object) (*T, error)) (*T, error) {
	if o == nil {
		return nil, nil
	}
	return fn(o)
}

func wrapDecode(method, path string, err error) error {
	return fmt.Errorf("backend: decodificar %s %s: %w", method, path, err)
}
