package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/listview"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// Nombres de las vistas de lista.
const (
	ViewProducts       = "products"
	ViewInventory      = "inventory"
	ViewStaff          = "staff"
	ViewImportReceipts = "import-receipts"
	ViewExportReceipts = "export-receipts"
	ViewHistoryLogs    = "history-logs"
)

// Identity identidad del operador actual. La implementa *session.Session.
type Identity interface {
	Role() string
	Profile() (session.Profile, bool)
}

// View operaciones uniformes de una vista de lista, independientes del tipo de fila.
type View interface {
	Name() string
	Load(ctx context.Context) (any, error)
	Refresh(ctx context.Context) (any, error)
	SetQuery(req dto.ViewQueryRequest) error
	SetSort(req dto.SortRequest) error
	SetPagination(req dto.PaginationRequest) error
	DeleteRow(ctx context.Context, id string, confirm ports.Confirmer) (*dto.DeleteResult, error)
	MarkStale()
	Reset()
}

// listView une el estado de lista con la proyección de filas y el protocolo de borrado.
type listView[T, R any] struct {
	spec    listview.Spec[T]
	state   *listview.State[T]
	project func(T) R
	options map[string]func(T) string
	label   func(T) string
	remove  func(ctx context.Context, id string) error
	guard   func(T) error
	removed func(id string)
	tr      *i18n.Translator
}

func newListView[T, R any](spec listview.Spec[T], load listview.Loader[T], project func(T) R, tr *i18n.Translator) *listView[T, R] {
	if spec.Location == nil {
		spec.Location = time.Local
	}
	return &listView[T, R]{
		spec:    spec,
		state:   listview.NewState(spec, load),
		project: project,
		label:   spec.ID,
		tr:      tr,
	}
}

// loadAll adapta un List del repositorio ([]*T) al Loader de la vista ([]T).
func loadAll[T any](list func(ctx context.Context) ([]*T, error)) listview.Loader[T] {
	return func(ctx context.Context) ([]T, error) {
		ptrs, err := list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, len(ptrs))
		for _, p := range ptrs {
			if p != nil {
				out = append(out, *p)
			}
		}
		return out, nil
	}
}

func (v *listView[T, R]) Name() string { return v.spec.Name }

func (v *listView[T, R]) response() dto.ViewResponse[R] {
	resp := dto.NewViewResponse(v.spec.Name, v.state.Snapshot(), v.spec.Grouping, v.project)
	resp.PageSizes = v.spec.PageSizes
	if len(v.options) > 0 {
		resp.Options = make(map[string][]string, len(v.options))
		for name, field := range v.options {
			resp.Options[name] = v.state.Distinct(field)
		}
	}
	return resp
}

// Load carga la vista la primera vez ("montar") y devuelve su estado derivado.
func (v *listView[T, R]) Load(ctx context.Context) (any, error) {
	if err := v.state.Ensure(ctx); err != nil {
		return nil, err
	}
	return v.response(), nil
}

func (v *listView[T, R]) Refresh(ctx context.Context) (any, error) {
	if err := v.state.Refresh(ctx); err != nil {
		return nil, err
	}
	return v.response(), nil
}

func (v *listView[T, R]) SetQuery(req dto.ViewQueryRequest) error {
	q, err := req.ToQuery(v.spec.Location)
	if err != nil {
		return err
	}
	return v.state.SetQuery(q)
}

func (v *listView[T, R]) SetSort(req dto.SortRequest) error {
	if req.Toggle {
		return v.state.ToggleSort(req.Field)
	}
	dir, err := listview.ParseDirection(req.Dir)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return v.state.SetSort(req.Field, dir)
}

func (v *listView[T, R]) SetPagination(req dto.PaginationRequest) error {
	if req.PageSize > 0 {
		if err := v.state.SetPageSize(req.PageSize); err != nil {
			return err
		}
	}
	if req.Page <= 0 {
		return nil
	}
	if req.Group != "" {
		return v.state.SetGroupPage(req.Group, req.Page)
	}
	v.state.SetPage(req.Page)
	return nil
}

// DeleteRow política → confirmación → backend → quitar fila local.
// Si el backend falla no se quita nada.
func (v *listView[T, R]) DeleteRow(ctx context.Context, id string, confirm ports.Confirmer) (*dto.DeleteResult, error) {
	row, ok := v.state.Find(id)
	if !ok {
		if err := v.state.Ensure(ctx); err != nil {
			return nil, err
		}
		if row, ok = v.state.Find(id); !ok {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, v.spec.Name, id)
		}
	}
	if v.guard != nil {
		if err := v.guard(row); err != nil {
			return nil, err
		}
	}
	prompt := v.tr.T(i18n.MsgConfirmDelete, v.label(row))
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		return nil, &ConfirmationRequired{Prompt: prompt}
	}
	if err := v.remove(ctx, id); err != nil {
		return nil, mutationFailed(v.tr.T(i18n.MsgDeleteFailed, v.label(row)), err)
	}
	v.state.Remove(id)
	if v.removed != nil {
		v.removed(id)
	}
	return &dto.DeleteResult{ID: id, Redirect: "/" + v.spec.Name}, nil
}

func (v *listView[T, R]) MarkStale() { v.state.MarkStale() }

func (v *listView[T, R]) Reset() { v.state.Reset() }
