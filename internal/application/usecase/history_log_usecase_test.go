package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

func logRows() []*entity.HistoryLog {
	return []*entity.HistoryLog{
		{ID: "l1", Username: "ana", Action: "Creó producto", PerformedAt: time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)},
		{ID: "l2", Username: "beto", Action: "Borró comprobante", PerformedAt: time.Date(2026, 5, 19, 18, 0, 0, 0, time.UTC), IsRead: true},
		{ID: "l3", Username: "ana", Action: "Editó personal", PerformedAt: time.Date(2026, 4, 30, 8, 0, 0, 0, time.UTC)},
	}
}

func newLogs(repo *fakeLogs) *HistoryLogUseCase {
	return NewHistoryLogUseCase(repo, fakeIdentity{role: "admin", username: "ana"}, i18n.New("es"), time.UTC)
}

func TestHistoryLogView_PaginaYAgrupaPorMesYDia(t *testing.T) {
	uc := newLogs(&fakeLogs{rows: logRows()})
	v, err := uc.ListView().Load(context.Background())
	require.NoError(t, err)
	resp, ok := v.(dto.ViewResponse[dto.HistoryLogView])
	require.True(t, ok)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 3, resp.Pagination.TotalItems)
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "2026-05", resp.Sections[0].Key)
	require.Len(t, resp.Sections[0].Days, 2)
	assert.Equal(t, "2026-05-20", resp.Sections[0].Days[0].Key)
	assert.Equal(t, "l1", resp.Sections[0].Days[0].Items[0].ID)
}

func TestHistoryLogView_RangoDeFechas(t *testing.T) {
	uc := newLogs(&fakeLogs{rows: logRows()})
	ctx := context.Background()
	_, _ = uc.ListView().Load(ctx)

	require.NoError(t, uc.ListView().SetQuery(dto.ViewQueryRequest{From: "2026-05-19", To: "2026-05-19"}))
	v, _ := uc.ListView().Load(ctx)
	resp := v.(dto.ViewResponse[dto.HistoryLogView])
	assert.Equal(t, 1, resp.FilteredTotal)

	err := uc.ListView().SetQuery(dto.ViewQueryRequest{From: "2026-05-20", To: "2026-05-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestHistoryLogMark_FijaElValorExplicito(t *testing.T) {
	repo := &fakeLogs{rows: logRows()}
	uc := newLogs(repo)
	ctx := context.Background()
	_, _ = uc.ListView().Load(ctx)

	for i := 0; i < 2; i++ {
		out, err := uc.MarkRead(ctx, "l2")
		require.NoError(t, err)
		assert.True(t, out.IsRead, "marcar como leída dos veces no la desmarca")
	}
	out, err := uc.MarkUnread(ctx, "l2")
	require.NoError(t, err)
	assert.False(t, out.IsRead)
	assert.Equal(t, []string{"l2", "l2"}, repo.reads)
	assert.Equal(t, []string{"l2"}, repo.unread)

	row, _ := uc.list.state.Find("l2")
	assert.False(t, row.IsRead)
}

func TestHistoryLogCreate_UsuarioDeLaSesion(t *testing.T) {
	uc := newLogs(&fakeLogs{})
	res, err := uc.Create(context.Background(), dto.CreateHistoryLogRequest{Action: "Inventario revisado"})
	require.NoError(t, err)
	assert.Equal(t, "l-new", res.ID)

	_, err = uc.Create(context.Background(), dto.CreateHistoryLogRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUnreadCount(t *testing.T) {
	uc := newLogs(&fakeLogs{rows: logRows()})
	n, err := uc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWorkspace_LogoutDesmontaLasVistas(t *testing.T) {
	logs := newLogs(&fakeLogs{rows: logRows()})
	ws := NewWorkspace(logs.ListView())
	ctx := context.Background()
	_, _ = logs.ListView().Load(ctx)
	require.NoError(t, logs.ListView().SetQuery(dto.ViewQueryRequest{Search: "ana"}))

	ws.OnSessionChange(session.Event{Reason: session.ReasonRestored, Authenticated: true})
	assert.Len(t, logs.list.state.Rows(), 3)

	ws.OnSessionChange(session.Event{Reason: session.ReasonLogout})
	assert.Empty(t, logs.list.state.Rows())
	assert.Equal(t, "", logs.list.state.Snapshot().Query.Search)

	v, ok := ws.View(ViewHistoryLogs)
	require.True(t, ok)
	assert.Equal(t, ViewHistoryLogs, v.Name())
	assert.Equal(t, []string{ViewHistoryLogs}, ws.Names())
}

func TestReferenceDelete_RequiereConfirmacion(t *testing.T) {
	products := newProducts(&fakeProducts{rows: sixProducts()}, nil)
	uc := NewReferenceUseCase(&fakeRefs{}, i18n.New("es"), products.ListView())
	_, _ = products.ListView().Load(context.Background())

	_, err := uc.Delete(context.Background(), entity.ReferenceBrand, "b1", nil)
	assert.True(t, errors.Is(err, domain.ErrNotConfirmed))

	kind, err := ParseReferenceKind("brands")
	require.NoError(t, err)
	ref, err := uc.Update(context.Background(), kind, "b1", dto.ReferenceRequest{Name: "Nueva"})
	require.NoError(t, err)
	assert.Equal(t, "Nueva", ref.Name)

	_, err = ParseReferenceKind("colores")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
