package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ReceiptWrite datos de alta de un comprobante de entrada o salida.
type ReceiptWrite struct {
	Code      string
	CreatedBy string
	CreatedAt time.Time
	Note      string
	Items     []entity.ReceiptItem
}

// ReceiptRepository puerto hacia el backend para comprobantes de un tipo (import o export).
type ReceiptRepository interface {
	Kind() entity.ReceiptKind
	List(ctx context.Context) ([]*entity.Receipt, error)
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	Create(ctx context.Context, in ReceiptWrite) (*entity.Receipt, error)
	Update(ctx context.Context, id string, in ReceiptWrite) (*entity.Receipt, error)
	Delete(ctx context.Context, id string) error
}
