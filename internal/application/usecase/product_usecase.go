package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// ProductUseCase catálogo de productos: vista de listado, informe de inventario, detalle y formularios.
// Las dos vistas comparten la misma colección del backend pero llevan estado de consulta propio.
type ProductUseCase struct {
	repo      repository.ProductRepository
	refs      repository.ReferenceRepository
	exporter  ports.InventoryExporter
	tr        *i18n.Translator
	list      *listView[entity.Product, dto.ProductView]
	inventory *listView[entity.Product, dto.InventoryRow]
}

// NewProductUseCase construye el caso de uso. exporter puede ser nil si no se exporta inventario.
func NewProductUseCase(repo repository.ProductRepository, refs repository.ReferenceRepository, exporter ports.InventoryExporter, tr *i18n.Translator, loc *time.Location) *ProductUseCase {
	uc := &ProductUseCase{repo: repo, refs: refs, exporter: exporter, tr: tr}
	load := loadAll(repo.List)

	uc.list = newListView(ProductListSpec(loc), load, dto.ToProductView, tr)
	uc.inventory = newListView(InventorySpec(loc), load, dto.ToInventoryRow, tr)
	uc.list.remove, uc.list.removed = repo.Delete, uc.forget
	uc.inventory.remove, uc.inventory.removed = repo.Delete, uc.forget
	options := map[string]func(entity.Product) string{"category": productCategory, "brand": productBrand}
	uc.list.options = options
	uc.inventory.options = options
	uc.list.label = productName
	uc.inventory.label = productName
	return uc
}

// forget quita el producto borrado de ambas vistas.
func (uc *ProductUseCase) forget(id string) {
	uc.list.state.Remove(id)
	uc.inventory.state.Remove(id)
}

// ListView vista del catálogo.
func (uc *ProductUseCase) ListView() View { return uc.list }

// InventoryView vista del informe de existencias.
func (uc *ProductUseCase) InventoryView() View { return uc.inventory }

// Get detalle de producto con su formulario de edición y las opciones de referencia.
// Producto y referencias se piden en paralelo; si cualquiera falla, falla el detalle.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductDetail, error) {
	var product *entity.Product
	var options *dto.ReferenceOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.repo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		o, err := uc.FormOptions(gctx)
		options = o
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.ProductDetail{
		Product: dto.ToProductView(*product),
		Form:    dto.ProductFormFromEntity(*product),
		Options: *options,
	}, nil
}

// FormOptions categorías, marcas, unidades y ubicaciones para los selectores del formulario.
func (uc *ProductUseCase) FormOptions(ctx context.Context) (*dto.ReferenceOptions, error) {
	var mu sync.Mutex
	out := &dto.ReferenceOptions{}
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range entity.ReferenceKinds {
		g.Go(func() error {
			refs, err := uc.refs.List(gctx, kind)
			if err != nil {
				return fmt.Errorf("opciones %s: %w", kind, err)
			}
			views := make([]dto.ReferenceView, 0, len(refs))
			for _, r := range refs {
				if r != nil {
					views = append(views, dto.ToReferenceView(*r))
				}
			}
			mu.Lock()
			out.Set(kind, views)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create da de alta el producto. Las vistas quedan desactualizadas y se recargan en la próxima lectura.
func (uc *ProductUseCase) Create(ctx context.Context, form dto.ProductForm, img *repository.ImageUpload) (*dto.MutationResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, form.ToWrite(img))
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgCreateFailed, form.Name), err)
	}
	uc.list.MarkStale()
	uc.inventory.MarkStale()
	if created != nil && created.ID != "" {
		return &dto.MutationResult{ID: created.ID, Redirect: "/products/" + created.ID}, nil
	}
	return &dto.MutationResult{Redirect: "/products"}, nil
}

// Update edita el producto y reemplaza la fila local con la representación del servidor.
func (uc *ProductUseCase) Update(ctx context.Context, id string, form dto.ProductForm, img *repository.ImageUpload) (*dto.ProductView, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, id, form.ToWrite(img))
	if err != nil {
		return nil, mutationFailed(uc.tr.T(i18n.MsgUpdateFailed, form.Name), err)
	}
	if updated == nil {
		if updated, err = uc.repo.GetByID(ctx, id); err != nil {
			uc.list.MarkStale()
			uc.inventory.MarkStale()
			return nil, err
		}
		if updated == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
	}
	if updated.ID == "" {
		updated.ID = id
	}
	uc.list.state.Replace(*updated)
	uc.inventory.state.Replace(*updated)
	v := dto.ToProductView(*updated)
	return &v, nil
}

// ListByLocation productos almacenados en una ubicación.
func (uc *ProductUseCase) ListByLocation(ctx context.Context, locationID string) ([]dto.ProductView, error) {
	products, err := uc.repo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductView, 0, len(products))
	for _, p := range products {
		if p != nil {
			out = append(out, dto.ToProductView(*p))
		}
	}
	return out, nil
}

// ExportInventory hoja de cálculo con las filas filtradas y ordenadas de la vista de inventario (todas las páginas).
func (uc *ProductUseCase) ExportInventory(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("%w: exportación no configurada", domain.ErrInvalidInput)
	}
	if err := uc.inventory.state.Ensure(ctx); err != nil {
		return nil, err
	}
	visible := uc.inventory.state.Visible()
	rows := make([]dto.InventoryRow, len(visible))
	for i, p := range visible {
		rows[i] = dto.ToInventoryRow(p)
	}
	return uc.exporter.ExportInventory(ctx, rows)
}
