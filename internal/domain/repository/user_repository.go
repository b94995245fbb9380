package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// UserWrite datos enviados al crear o editar un miembro del personal.
type UserWrite struct {
	StaffCode string
	Username  string
	Email     string
	Phone     string
	Password  string // solo en alta
	Role      string
	Birthday  *time.Time
	CreatedAt *time.Time
}

// UserRepository puerto hacia el backend para el personal.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, in UserWrite) (*entity.User, error)
	Update(ctx context.Context, id string, in UserWrite) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
