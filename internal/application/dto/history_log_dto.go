package dto

import (
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// HistoryLogView entrada del registro de actividad.
type HistoryLogView struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Action      string    `json:"action"`
	PerformedAt time.Time `json:"performed_at"`
	IsRead      bool      `json:"is_read"`
}

// ToHistoryLogView entity → display.
func ToHistoryLogView(l entity.HistoryLog) HistoryLogView {
	return HistoryLogView{ID: l.ID, Username: l.Username, Action: l.Action, PerformedAt: l.PerformedAt, IsRead: l.IsRead}
}

// CreateHistoryLogRequest alta manual de una entrada.
type CreateHistoryLogRequest struct {
	Username string `json:"username"`
	Action   string `json:"action"`
}

// NotificationStatus contador de no leídas del último sondeo.
type NotificationStatus struct {
	Unread    int       `json:"unread"`
	Label     string    `json:"label"`
	CheckedAt time.Time `json:"checked_at"`
	Running   bool      `json:"running"`
}
