package entity

import "time"

// HistoryLog entrada del registro de actividad. IsRead es el único campo que cambia tras la creación.
type HistoryLog struct {
	ID          string
	Username    string
	Action      string
	PerformedAt time.Time
	IsRead      bool
}
