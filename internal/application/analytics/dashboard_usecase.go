// Package analytics contiene el resumen del inicio de la consola (tarjetas del dashboard).
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

// RoleSource rol del operador actual.
type RoleSource interface {
	Role() string
}

// DashboardUseCase genera las tarjetas del día: productos, personal, entradas y salidas de hoy.
//
// Fuente de datos: los listados del backend. Solo el administrador ve las tarjetas.
type DashboardUseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
	imports  repository.ReceiptRepository
	exports  repository.ReceiptRepository
	roles    RoleSource
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	users repository.UserRepository,
	imports, exports repository.ReceiptRepository,
	roles RoleSource,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{products: products, users: users, imports: imports, exports: exports, roles: roles, loc: loc, now: time.Now}
}

// GetSummary construye las tarjetas para el operador actual.
//
// Cuatro llamadas en paralelo; si una falla, falla el resumen completo:
//  1. productos → total
//  2. personal  → total
//  3. entradas  → las de hoy
//  4. salidas   → las de hoy
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardStats, error) {
	if uc.roles.Role() != entity.RoleAdmin {
		return &dto.DashboardStats{}, nil
	}
	now := uc.now().In(uc.loc)
	out := &dto.DashboardStats{Visible: true, DateLabel: dayLabel(now)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := uc.products.List(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		out.Products = len(products)
		return nil
	})
	g.Go(func() error {
		users, err := uc.users.List(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: personal: %w", err)
		}
		out.Staff = len(users)
		return nil
	})
	g.Go(func() error {
		n, err := uc.countToday(gctx, uc.imports, now)
		if err != nil {
			return fmt.Errorf("dashboard: entradas de hoy: %w", err)
		}
		out.ImportsToday = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.countToday(gctx, uc.exports, now)
		if err != nil {
			return fmt.Errorf("dashboard: salidas de hoy: %w", err)
		}
		out.ExportsToday = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *DashboardUseCase) countToday(ctx context.Context, repo repository.ReceiptRepository, now time.Time) (int, error) {
	receipts, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	y, m, d := now.Date()
	n := 0
	for _, r := range receipts {
		if r == nil {
			continue
		}
		ry, rm, rd := r.CreatedAt.In(uc.loc).Date()
		if ry == y && rm == m && rd == d {
			n++
		}
	}
	return n, nil
}

// dayLabel devuelve una etiqueta legible del día, ej: "19 de Octubre 2026".
func dayLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d de %s %d", t.Day(), months[t.Month()-1], t.Year())
}
