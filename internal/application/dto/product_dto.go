package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

// ProductView proyección de lectura: etiquetas de categoría/marca/unidad/ubicación por nombre.
type ProductView struct {
	ID          string          `json:"id"`
	Code        string          `json:"product_code"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Unit        string          `json:"unit"`
	Location    string          `json:"location"`
	ImportPrice decimal.Decimal `json:"import_price"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"in_stock"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// ToProductView entity → display.
func ToProductView(p entity.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		Category:    p.CategoryName,
		Brand:       p.BrandName,
		Unit:        p.UnitName,
		Location:    p.LocationName,
		ImportPrice: p.ImportPrice,
		Stock:       p.Stock,
		InStock:     p.InStock(),
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

// InventoryRow fila del informe de existencias: valor = stock × precio de importación.
type InventoryRow struct {
	ProductView
	Value decimal.Decimal `json:"value"`
}

// ToInventoryRow entity → fila de inventario.
func ToInventoryRow(p entity.Product) InventoryRow {
	return InventoryRow{
		ProductView: ToProductView(p),
		Value:       p.ImportPrice.Mul(decimal.NewFromInt(int64(p.Stock))),
	}
}

// ProductForm proyección de escritura: referencias por ID. Precio como texto decimal.
type ProductForm struct {
	Code        string `json:"product_code" form:"product_code"`
	Name        string `json:"name" form:"name"`
	CategoryID  string `json:"category_id" form:"category_id"`
	BrandID     string `json:"brand_id" form:"brand_id"`
	UnitID      string `json:"unit_id" form:"unit_id"`
	LocationID  string `json:"location_id" form:"location_id"`
	ImportPrice string `json:"import_price" form:"import_price"`
	Stock       int    `json:"stock" form:"stock"`
}

// ProductFormFromEntity entity → form. Las etiquetas de nombre no viajan al formulario.
func ProductFormFromEntity(p entity.Product) ProductForm {
	return ProductForm{
		Code:        p.Code,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		UnitID:      p.UnitID,
		LocationID:  p.LocationID,
		ImportPrice: p.ImportPrice.String(),
		Stock:       p.Stock,
	}
}

// Validate comprueba obligatorios, precio ≥ 0 y stock ≥ 0.
func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Code) == "" || strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if f.Stock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(f.ImportPrice) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(f.ImportPrice))
		if err != nil {
			return fmt.Errorf("%w: precio %q", domain.ErrInvalidInput, f.ImportPrice)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	return nil
}

// ToWrite form → puerto de escritura.
func (f ProductForm) ToWrite(img *repository.ImageUpload) repository.ProductWrite {
	return repository.ProductWrite{
		Code:        strings.TrimSpace(f.Code),
		Name:        strings.TrimSpace(f.Name),
		CategoryID:  f.CategoryID,
		BrandID:     f.BrandID,
		UnitID:      f.UnitID,
		LocationID:  f.LocationID,
		ImportPrice: strings.TrimSpace(f.ImportPrice),
		Stock:       f.Stock,
		Image:       img,
	}
}

// ProductDetail producto con su formulario de edición y las opciones de referencia.
type ProductDetail struct {
	Product ProductView      `json:"product"`
	Form    ProductForm      `json:"form"`
	Options ReferenceOptions `json:"options"`
}
