package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// HistoryLogUseCase registro de actividad y su estado leído/no leído.
type HistoryLogUseCase struct {
	repo     repository.HistoryLogRepository
	identity Identity
	tr       *i18n.Translator
	list     *listView[entity.HistoryLog, dto.HistoryLogView]
}

// NewHistoryLogUseCase construye el caso de uso.
func NewHistoryLogUseCase(repo repository.HistoryLogRepository, identity Identity, tr *i18n.Translator, loc *time.Location) *HistoryLogUseCase {
	uc := &HistoryLogUseCase{repo: repo, identity: identity, tr: tr}
	uc.list = newListView(HistoryLogSpec(loc), loadAll(repo.List), dto.ToHistoryLogView, tr)
	uc.list.label = func(l entity.HistoryLog) string { return l.Action }
	uc.list.remove = repo.Delete
	return uc
}

// ListView vista del registro.
func (uc *HistoryLogUseCase) ListView() View { return uc.list }

// Get una entrada del registro.
func (uc *HistoryLogUseCase) Get(ctx context.Context, id string) (*dto.HistoryLogView, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: registro %s", domain.ErrNotFound, id)
	}
	v := dto.ToHistoryLogView(*l)
	return &v, nil
}

// MarkRead marca la entrada como leída y fija el valor en la fila local.
func (uc *HistoryLogUseCase) MarkRead(ctx context.Context, id string) (*dto.HistoryLogView, error) {
	return uc.setRead(ctx, id, true)
}

// MarkUnread marca la entrada como no leída y fija el valor en la fila local.
func (uc *HistoryLogUseCase) MarkUnread(ctx context.Context, id string) (*dto.HistoryLogView, error) {
	return uc.setRead(ctx, id, false)
}

// setRead el flag local toma el valor destino explícito, no se invierte.
func (uc *HistoryLogUseCase) setRead(ctx context.Context, id string, read bool) (*dto.HistoryLogView, error) {
	mark := uc.repo.MarkUnread
	if read {
		mark = uc.repo.MarkRead
	}
	if err := mark(ctx, id); err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgUpdateFailed, id), err)
	}
	var out *dto.HistoryLogView
	uc.list.state.Update(id, func(l entity.HistoryLog) entity.HistoryLog {
		l.IsRead = read
		v := dto.ToHistoryLogView(l)
		out = &v
		return l
	})
	if out == nil {
		out = &dto.HistoryLogView{ID: id, IsRead: read}
	}
	return out, nil
}

// Create registra una acción. Sin usuario se usa el operador actual.
func (uc *HistoryLogUseCase) Create(ctx context.Context, in dto.CreateHistoryLogRequest) (*dto.MutationResult, error) {
	w := repository.HistoryLogWrite{Username: strings.TrimSpace(in.Username), Action: strings.TrimSpace(in.Action)}
	if w.Action == "" {
		return nil, fmt.Errorf("%w: la acción es obligatoria", domain.ErrInvalidInput)
	}
	if w.Username == "" {
		if p, ok := uc.identity.Profile(); ok {
			w.Username = p.Username
		}
	}
	created, err := uc.repo.Create(ctx, w)
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgCreateFailed, w.Action), err)
	}
	uc.list.MarkStale()
	if created != nil && created.ID != "" {
		return &dto.MutationResult{ID: created.ID, Redirect: "/history-logs"}, nil
	}
	return &dto.MutationResult{Redirect: "/history-logs"}, nil
}

// UnreadCount cantidad de entradas no leídas según el backend.
func (uc *HistoryLogUseCase) UnreadCount(ctx context.Context) (int, error) {
	unread, err := uc.repo.ListUnread(ctx)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}
