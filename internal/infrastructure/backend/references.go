package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceAPI)(nil)

var referencePaths = map[entity.ReferenceKind]string{
	entity.ReferenceCategory: "/categories",
	entity.ReferenceBrand:    "/brands",
	entity.ReferenceUnit:     "/units",
	entity.ReferenceLocation: "/locations",
}

// ReferenceAPI implementa ReferenceRepository sobre /categories, /brands, /units y /locations.
type ReferenceAPI struct {
	c *Client
}

// NewReferenceAPI crea el adaptador.
func NewReferenceAPI(c *Client) *ReferenceAPI { return &ReferenceAPI{c: c} }

func resourceOf(kind entity.ReferenceKind) (string, error) {
	p, ok := referencePaths[kind]
	if !ok {
		return "", fmt.Errorf("%w: tipo de referencia %q", domain.ErrInvalidInput, kind)
	}
	return p, nil
}

type referencePayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

func (a *ReferenceAPI) List(ctx context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error) {
	path, err := resourceOf(kind)
	if err != nil {
		return nil, err
	}
	objs, err := a.c.list(ctx, path)
	if err != nil {
		return nil, err
	}
	out, err := mapList(objs, toReference(kind))
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return out, nil
}

func (a *ReferenceAPI) Create(ctx context.Context, kind entity.ReferenceKind, in repository.ReferenceWrite) (*entity.Reference, error) {
	path, err := resourceOf(kind)
	if err != nil {
		return nil, err
	}
	return a.save(ctx, kind, http.MethodPost, path, in)
}

func (a *ReferenceAPI) Update(ctx context.Context, kind entity.ReferenceKind, id string, in repository.ReferenceWrite) (*entity.Reference, error) {
	path, err := resourceOf(kind)
	if err != nil {
		return nil, err
	}
	return a.save(ctx, kind, http.MethodPut, path+"/"+url.PathEscape(id), in)
}

func (a *ReferenceAPI) save(ctx context.Context, kind entity.ReferenceKind, method, path string, in repository.ReferenceWrite) (*entity.Reference, error) {
	o, err := a.c.write(ctx, method, path, referencePayload{Name: in.Name, Slug: in.Slug, Description: in.Description})
	if err != nil {
		return nil, err
	}
	ref, err := mapOne(o, toReference(kind))
	if err != nil {
		return nil, wrapDecode(method, path, err)
	}
	return ref, nil
}

func (a *ReferenceAPI) Delete(ctx context.Context, kind entity.ReferenceKind, id string) error {
	path, err := resourceOf(kind)
	if err != nil {
		return err
	}
	return a.c.delete(ctx, path+"/"+url.PathEscape(id))
}
