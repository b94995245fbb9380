package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// StaffCodePrefix prefijo de los códigos de personal (STF001, STF002, ...).
const StaffCodePrefix = "STF"

// StaffUseCase administración del personal.
type StaffUseCase struct {
	repo repository.UserRepository
	tr   *i18n.Translator
	now  func() time.Time
	list *listView[entity.User, dto.StaffRow]
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.UserRepository, tr *i18n.Translator, loc *time.Location) *StaffUseCase {
	uc := &StaffUseCase{repo: repo, tr: tr, now: time.Now}
	uc.list = newListView(StaffSpec(loc), loadAll(repo.List), dto.ToStaffRow, tr)
	uc.list.options = map[string]func(entity.User) string{"role": func(u entity.User) string { return u.Role }}
	uc.list.label = userName
	uc.list.remove = repo.Delete
	return uc
}

// ListView vista del personal.
func (uc *StaffUseCase) ListView() View { return uc.list }

// NextStaffCode primer código STF### libre según el listado actual del backend.
func (uc *StaffUseCase) NextStaffCode(ctx context.Context) (string, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(users))
	for _, u := range users {
		if u != nil {
			codes = append(codes, u.StaffCode)
		}
	}
	return NextStaffCode(codes), nil
}

// NextStaffCode devuelve el menor STF### (desde 001) que no figura en codes.
func NextStaffCode(codes []string) string {
	used := make(map[int]bool, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !strings.HasPrefix(c, StaffCodePrefix) {
			continue
		}
		if n, err := strconv.Atoi(c[len(StaffCodePrefix):]); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return fmt.Sprintf("%s%03d", StaffCodePrefix, n)
}

// Get detalle de un miembro. Inexistente → ErrNotFound con vuelta al listado.
func (uc *StaffUseCase) Get(ctx context.Context, id string) (*dto.StaffRow, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &RedirectError{Err: fmt.Errorf("%w: %v", domain.ErrUserNotFound, err), To: "/staff"}
		}
		return nil, err
	}
	if u == nil {
		return nil, &RedirectError{Err: fmt.Errorf("%w: %s", domain.ErrUserNotFound, id), To: "/staff"}
	}
	row := dto.ToStaffRow(*u)
	return &row, nil
}

// Create alta de personal. Sin código se asigna el siguiente libre; sin fecha de alta, hoy.
func (uc *StaffUseCase) Create(ctx context.Context, in dto.CreateStaffRequest) (*dto.MutationResult, error) {
	w, err := in.ToWrite()
	if err != nil {
		return nil, err
	}
	if w.StaffCode == "" {
		if w.StaffCode, err = uc.NextStaffCode(ctx); err != nil {
			return nil, err
		}
	}
	if w.CreatedAt == nil {
		t := uc.now()
		today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		w.CreatedAt = &today
	}
	created, err := uc.repo.Create(ctx, w)
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgCreateFailed, w.Username), err)
	}
	uc.list.MarkStale()
	if created != nil && created.ID != "" {
		return &dto.MutationResult{ID: created.ID, Redirect: "/staff/" + created.ID}, nil
	}
	return &dto.MutationResult{Redirect: "/staff"}, nil
}

// Update edita el miembro y reemplaza la fila local.
func (uc *StaffUseCase) Update(ctx context.Context, id string, in dto.UpdateStaffRequest) (*dto.StaffRow, error) {
	w, err := in.ToWrite()
	if err != nil {
		return nil, err
	}
	if prev, ok := uc.list.state.Find(id); ok {
		w.StaffCode = prev.StaffCode
		if w.CreatedAt == nil && !prev.CreatedAt.IsZero() {
			t := prev.CreatedAt
			w.CreatedAt = &t
		}
	}
	updated, err := uc.repo.Update(ctx, id, w)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &RedirectError{Err: err, To: "/staff"}
		}
		return nil, mutationFailed(uc.tr.T(i18n.MsgUpdateFailed, w.Username), err)
	}
	if updated == nil {
		uc.list.MarkStale()
		return uc.Get(ctx, id)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	uc.list.state.Replace(*updated)
	row := dto.ToStaffRow(*updated)
	return &row, nil
}
