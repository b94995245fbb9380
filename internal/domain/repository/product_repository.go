package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ProductWrite proyección de escritura de un producto: referencias por ID, nunca por nombre.
type ProductWrite struct {
	Code        string
	Name        string
	CategoryID  string
	BrandID     string
	UnitID      string
	LocationID  string
	ImportPrice string // decimal serializado
	Stock       int
	Image       *ImageUpload
}

// ImageUpload archivo de imagen adjunto al alta/edición de producto.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductRepository puerto hacia el backend para productos.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.Product, error)
	Create(ctx context.Context, in ProductWrite) (*entity.Product, error)
	Update(ctx context.Context, id string, in ProductWrite) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
