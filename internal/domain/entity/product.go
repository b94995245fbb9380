package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo tal como lo devuelve el backend.
// Los nombres de categoría/marca/unidad/ubicación son etiquetas desnormalizadas para mostrar;
// los IDs solo se usan al escribir (formularios de alta y edición).
type Product struct {
	ID           string
	Code         string // código único del producto (productCode)
	Name         string
	ImageURL     string // absoluta o vacía; el gateway reescribe las rutas relativas
	CategoryName string
	BrandName    string
	UnitName     string
	LocationName string
	CategoryID   string
	BrandID      string
	UnitID       string
	LocationID   string
	ImportPrice  decimal.Decimal // precio de importación, nunca negativo
	Stock        int             // existencias, nunca negativas
	UpdatedAt    time.Time
}

// InStock indica si el producto tiene existencias.
func (p Product) InStock() bool { return p.Stock > 0 }
