package dto

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

// ReferenceView categoría, marca, unidad o ubicación.
type ReferenceView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// ToReferenceView entity → display.
func ToReferenceView(r entity.Reference) ReferenceView {
	return ReferenceView{ID: r.ID, Kind: string(r.Kind), Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// ReferenceOptions opciones de los selectores del formulario de producto.
type ReferenceOptions struct {
	Categories []ReferenceView `json:"categories"`
	Brands     []ReferenceView `json:"brands"`
	Units      []ReferenceView `json:"units"`
	Locations  []ReferenceView `json:"locations"`
}

// Set asigna la lista del tipo indicado.
func (o *ReferenceOptions) Set(kind entity.ReferenceKind, refs []ReferenceView) {
	switch kind {
	case entity.ReferenceCategory:
		o.Categories = refs
	case entity.ReferenceBrand:
		o.Brands = refs
	case entity.ReferenceUnit:
		o.Units = refs
	case entity.ReferenceLocation:
		o.Locations = refs
	}
}

// ReferenceRequest alta/edición de una referencia.
type ReferenceRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ToWrite valida y convierte.
func (r ReferenceRequest) ToWrite() (repository.ReferenceWrite, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return repository.ReferenceWrite{}, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	return repository.ReferenceWrite{Name: name, Slug: strings.TrimSpace(r.Slug), Description: r.Description}, nil
}
