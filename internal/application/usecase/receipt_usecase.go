package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/policy"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// ReceiptUseCase comprobantes de un tipo (entrada o salida): vista agrupada por mes,
// detalle, alta, impresión y borrado sujeto a la política de roles.
type ReceiptUseCase struct {
	repo     repository.ReceiptRepository
	identity Identity
	printer  ports.ReceiptPrinter
	tr       *i18n.Translator
	loc      *time.Location
	now      func() time.Time
	list     *listView[entity.Receipt, dto.ReceiptRow]
}

// NewReceiptUseCase construye el caso de uso. printer puede ser nil si no se imprime.
func NewReceiptUseCase(repo repository.ReceiptRepository, identity Identity, printer ports.ReceiptPrinter, tr *i18n.Translator, loc *time.Location) *ReceiptUseCase {
	if loc == nil {
		loc = time.Local
	}
	uc := &ReceiptUseCase{repo: repo, identity: identity, printer: printer, tr: tr, loc: loc, now: time.Now}
	uc.list = newListView(ReceiptSpec(repo.Kind(), loc), loadAll(repo.List), uc.row, tr)
	uc.list.label = func(r entity.Receipt) string { return r.Code }
	uc.list.guard = uc.checkDelete
	uc.list.remove = repo.Delete
	return uc
}

// Kind tipo de comprobante.
func (uc *ReceiptUseCase) Kind() entity.ReceiptKind { return uc.repo.Kind() }

// ListView vista de comprobantes.
func (uc *ReceiptUseCase) ListView() View { return uc.list }

func (uc *ReceiptUseCase) basePath() string { return "/" + uc.list.spec.Name }

// Decision evalúa la política de borrado para el operador actual.
func (uc *ReceiptUseCase) Decision(r entity.Receipt) policy.Decision {
	return policy.CanDeleteReceipt(uc.identity.Role(), r.CreatedAt, uc.now())
}

func (uc *ReceiptUseCase) row(r entity.Receipt) dto.ReceiptRow {
	return dto.ToReceiptRow(r, uc.Decision(r))
}

// checkDelete vuelve a evaluar la política justo antes de llamar al backend.
func (uc *ReceiptUseCase) checkDelete(r entity.Receipt) error {
	if d := uc.Decision(r); !d.Allowed {
		return &PolicyError{Decision: d}
	}
	return nil
}

// Get detalle del comprobante con sus líneas.
func (uc *ReceiptUseCase) Get(ctx context.Context, id string) (*dto.ReceiptDetail, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, id)
	}
	if r.Kind == "" {
		r.Kind = uc.repo.Kind()
	}
	d := dto.ToReceiptDetail(*r, uc.Decision(*r))
	return &d, nil
}

// NewCode código de comprobante: prefijo del tipo + milisegundos Unix.
func (uc *ReceiptUseCase) NewCode() string {
	return uc.repo.Kind().CodePrefix() + strconv.FormatInt(uc.now().UnixMilli(), 10)
}

// Create alta del comprobante. Sin código se genera, sin autor se usa el operador
// y sin fecha se usa hoy en la zona local.
func (uc *ReceiptUseCase) Create(ctx context.Context, in dto.CreateReceiptRequest) (*dto.MutationResult, error) {
	items, err := in.Lines()
	if err != nil {
		return nil, err
	}
	w := repository.ReceiptWrite{
		Code:      strings.TrimSpace(in.Code),
		CreatedBy: strings.TrimSpace(in.CreatedBy),
		Note:      strings.TrimSpace(in.Note),
		Items:     items,
	}
	if w.Code == "" {
		w.Code = uc.NewCode()
	}
	if w.CreatedBy == "" {
		if p, ok := uc.identity.Profile(); ok {
			w.CreatedBy = p.Username
		}
	}
	if s := strings.TrimSpace(in.CreatedAt); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q (se espera AAAA-MM-DD)", domain.ErrInvalidInput, s)
		}
		w.CreatedAt = t
	} else {
		w.CreatedAt = uc.now().In(uc.loc)
	}
	created, err := uc.repo.Create(ctx, w)
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgCreateFailed, w.Code), err)
	}
	uc.list.MarkStale()
	if created != nil && created.ID != "" {
		return &dto.MutationResult{ID: created.ID, Redirect: uc.basePath() + "/" + created.ID}, nil
	}
	return &dto.MutationResult{Redirect: uc.basePath()}, nil
}

// Print PDF del comprobante y nombre de archivo sugerido.
func (uc *ReceiptUseCase) Print(ctx context.Context, id string) ([]byte, string, error) {
	if uc.printer == nil {
		return nil, "", fmt.Errorf("%w: impresión no configurada", domain.ErrInvalidInput)
	}
	detail, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.printer.RenderReceipt(ctx, *detail)
	if err != nil {
		return nil, "", fmt.Errorf("imprimir comprobante %s: %w", detail.Code, err)
	}
	name := detail.Code
	if name == "" {
		name = id
	}
	return pdf, name + ".pdf", nil
}
