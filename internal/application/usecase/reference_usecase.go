package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// referencePaths segmento de URL de la consola → tipo de referencia.
var referencePaths = map[string]entity.ReferenceKind{
	"categories": entity.ReferenceCategory,
	"brands":     entity.ReferenceBrand,
	"units":      entity.ReferenceUnit,
	"locations":  entity.ReferenceLocation,
}

// ParseReferenceKind acepta el plural de la URL ("categories") o el nombre del tipo ("category").
func ParseReferenceKind(s string) (entity.ReferenceKind, error) {
	if k, ok := referencePaths[s]; ok {
		return k, nil
	}
	for _, k := range entity.ReferenceKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: tipo de referencia %q", domain.ErrNotFound, s)
}

// ReferenceUseCase CRUD de categorías, marcas, unidades y ubicaciones.
// Cualquier cambio deja desactualizadas las vistas de producto que muestran sus nombres.
type ReferenceUseCase struct {
	repo     repository.ReferenceRepository
	tr       *i18n.Translator
	affected []View
}

// NewReferenceUseCase construye el caso de uso. affected son las vistas a recargar tras un cambio.
func NewReferenceUseCase(repo repository.ReferenceRepository, tr *i18n.Translator, affected ...View) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo, tr: tr, affected: affected}
}

func (uc *ReferenceUseCase) touch() {
	for _, v := range uc.affected {
		v.MarkStale()
	}
}

// List referencias de un tipo.
func (uc *ReferenceUseCase) List(ctx context.Context, kind entity.ReferenceKind) ([]dto.ReferenceView, error) {
	refs, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceView, 0, len(refs))
	for _, r := range refs {
		if r != nil {
			out = append(out, dto.ToReferenceView(*r))
		}
	}
	return out, nil
}

// Create alta de una referencia.
func (uc *ReferenceUseCase) Create(ctx context.Context, kind entity.ReferenceKind, in dto.ReferenceRequest) (*dto.ReferenceView, error) {
	w, err := in.ToWrite()
	if err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, kind, w)
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgCreateFailed, w.Name), err)
	}
	uc.touch()
	if created == nil {
		return &dto.ReferenceView{Kind: string(kind), Name: w.Name, Slug: w.Slug, Description: w.Description}, nil
	}
	v := dto.ToReferenceView(*created)
	return &v, nil
}

// Update edición de una referencia.
func (uc *ReferenceUseCase) Update(ctx context.Context, kind entity.ReferenceKind, id string, in dto.ReferenceRequest) (*dto.ReferenceView, error) {
	w, err := in.ToWrite()
	if err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, kind, id, w)
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgUpdateFailed, w.Name), err)
	}
	uc.touch()
	if updated == nil {
		return &dto.ReferenceView{ID: id, Kind: string(kind), Name: w.Name, Slug: w.Slug, Description: w.Description}, nil
	}
	v := dto.ToReferenceView(*updated)
	return &v, nil
}

// Delete borra una referencia tras confirmación explícita.
func (uc *ReferenceUseCase) Delete(ctx context.Context, kind entity.ReferenceKind, id string, confirm ports.Confirmer) (*dto.DeleteResult, error) {
	prompt := uc.tr.T(i18n.MsgConfirmDelete, string(kind)+" "+id)
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		return nil, &ConfirmationRequired{Prompt: prompt}
	}
	if err := uc.repo.Delete(ctx, kind, id); err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgDeleteFailed, id), err)
	}
	uc.touch()
	return &dto.DeleteResult{ID: id}, nil
}
