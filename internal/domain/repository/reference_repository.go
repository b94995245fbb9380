package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ReferenceWrite datos de alta/edición de una entidad de referencia.
type ReferenceWrite struct {
	Name        string
	Slug        string
	Description string
}

// ReferenceRepository puerto hacia el backend para categorías, marcas, unidades y ubicaciones.
type ReferenceRepository interface {
	List(ctx context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error)
	Create(ctx context.Context, kind entity.ReferenceKind, in ReferenceWrite) (*entity.Reference, error)
	Update(ctx context.Context, kind entity.ReferenceKind, id string, in ReferenceWrite) (*entity.Reference, error)
	Delete(ctx context.Context, kind entity.ReferenceKind, id string) error
}
