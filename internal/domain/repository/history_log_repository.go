package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// HistoryLogEvent evento recibido por el stream de notificaciones del backend.
type HistoryLogEvent struct {
	Name string
	Data []byte
}

// HistoryLogWrite alta manual de una entrada del registro.
type HistoryLogWrite struct {
	Username string
	Action   string
}

// HistoryLogRepository puerto hacia el backend para el registro de actividad.
type HistoryLogRepository interface {
	List(ctx context.Context) ([]*entity.HistoryLog, error)
	ListUnread(ctx context.Context) ([]*entity.HistoryLog, error)
	GetByID(ctx context.Context, id string) (*entity.HistoryLog, error)
	Create(ctx context.Context, in HistoryLogWrite) (*entity.HistoryLog, error)
	MarkRead(ctx context.Context, id string) error
	MarkUnread(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// Subscribe consume el stream del backend hasta que ctx se cancele o la conexión se cierre.
	Subscribe(ctx context.Context, fn func(HistoryLogEvent)) error
}
