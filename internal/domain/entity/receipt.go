package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptKind distingue comprobantes de entrada (import) y de salida (export).
type ReceiptKind string

const (
	ReceiptImport ReceiptKind = "import"
	ReceiptExport ReceiptKind = "export"
)

// CodePrefix devuelve el prefijo del código de comprobante según el tipo.
func (k ReceiptKind) CodePrefix() string {
	if k == ReceiptExport {
		return "PXK-"
	}
	return "PNK-"
}

// Valid indica si el tipo es conocido.
func (k ReceiptKind) Valid() bool {
	return k == ReceiptImport || k == ReceiptExport
}

// ReceiptItem línea de un comprobante: cantidad > 0, precio unitario >= 0.
type ReceiptItem struct {
	ProductID   string
	ProductName string
	ProductCode string
	Category    string
	Brand       string
	Unit        string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (i ReceiptItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Receipt comprobante de entrada o salida de bodega. Inmutable tras su creación salvo borrado.
type Receipt struct {
	ID          string
	Kind        ReceiptKind
	Code        string
	CreatedBy   string
	CreatedAt   time.Time
	Note        string
	Items       []ReceiptItem
	TotalAmount *decimal.Decimal // total informado por el backend, si lo envía
}

// Total devuelve el total del backend si existe; si no, Σ(cantidad × precio).
func (r Receipt) Total() decimal.Decimal {
	if r.TotalAmount != nil {
		return *r.TotalAmount
	}
	return ItemsTotal(r.Items)
}

// ItemsTotal suma los subtotales de las líneas.
func ItemsTotal(items []ReceiptItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
