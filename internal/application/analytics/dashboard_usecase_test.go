package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

type role string

func (r role) Role() string { return string(r) }

type products struct {
	repository.ProductRepository
	n   int
	err error
}

func (p products) List(context.Context) ([]*entity.Product, error) {
	return make([]*entity.Product, p.n), p.err
}

type users struct {
	repository.UserRepository
	n int
}

func (u users) List(context.Context) ([]*entity.User, error) { return make([]*entity.User, u.n), nil }

type receipts struct {
	repository.ReceiptRepository
	at []time.Time
}

func (r receipts) List(context.Context) ([]*entity.Receipt, error) {
	out := make([]*entity.Receipt, len(r.at))
	for i, t := range r.at {
		out[i] = &entity.Receipt{ID: t.String(), CreatedAt: t}
	}
	return out, nil
}

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestGetSummary_AdminCuentaLosDeHoy(t *testing.T) {
	imports := receipts{at: []time.Time{now.Add(-time.Hour), now.Add(-13 * time.Hour), now.Add(-30 * time.Hour)}}
	exports := receipts{at: []time.Time{now}}
	uc := NewDashboardUseCase(products{n: 7}, users{n: 3}, imports, exports, role("admin"), time.UTC)
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Visible)
	assert.Equal(t, 7, out.Products)
	assert.Equal(t, 3, out.Staff)
	assert.Equal(t, 1, out.ImportsToday)
	assert.Equal(t, 1, out.ExportsToday)
	assert.Equal(t, "19 de Octubre 2026", out.DateLabel)
}

func TestGetSummary_OtrosRolesSinTarjetas(t *testing.T) {
	uc := NewDashboardUseCase(products{}, users{}, receipts{}, receipts{}, role("staff"), time.UTC)
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Visible)
}

func TestGetSummary_UnFalloFallaTodo(t *testing.T) {
	uc := NewDashboardUseCase(products{err: domain.ErrBackendUnavailable}, users{}, receipts{}, receipts{}, role("admin"), time.UTC)
	_, err := uc.GetSummary(context.Background())
	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
}
