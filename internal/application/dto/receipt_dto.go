package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/policy"
)

// ReceiptRow fila del listado de comprobantes con la decisión de borrado ya evaluada.
type ReceiptRow struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Code         string          `json:"code"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	Note         string          `json:"note,omitempty"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
	CanDelete    bool            `json:"can_delete"`
	DeletePolicy string          `json:"delete_policy"`
	DeleteReason string          `json:"delete_reason,omitempty"`
}

// ToReceiptRow entity + decisión de política → fila.
func ToReceiptRow(r entity.Receipt, d policy.Decision) ReceiptRow {
	createdBy := r.CreatedBy
	if createdBy == "" {
		createdBy = "?"
	}
	return ReceiptRow{
		ID:           r.ID,
		Kind:         string(r.Kind),
		Code:         r.Code,
		CreatedBy:    createdBy,
		CreatedAt:    r.CreatedAt,
		Note:         r.Note,
		ItemCount:    len(r.Items),
		Total:        r.Total(),
		CanDelete:    d.Allowed,
		DeletePolicy: d.Policy,
		DeleteReason: d.Reason,
	}
}

// ReceiptLineView línea del detalle.
type ReceiptLineView struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ReceiptDetail comprobante con sus líneas.
type ReceiptDetail struct {
	ReceiptRow
	Items []ReceiptLineView `json:"items"`
}

// ToReceiptDetail entity → detalle.
func ToReceiptDetail(r entity.Receipt, d policy.Decision) ReceiptDetail {
	out := ReceiptDetail{ReceiptRow: ToReceiptRow(r, d), Items: make([]ReceiptLineView, len(r.Items))}
	for i, it := range r.Items {
		out.Items[i] = ReceiptLineView{
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Category:    it.Category,
			Brand:       it.Brand,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		}
	}
	return out
}

// ReceiptLineRequest línea del formulario de alta.
type ReceiptLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// CreateReceiptRequest formulario de alta. Code vacío se genera; CreatedAt vacío = hoy.
type CreateReceiptRequest struct {
	Code      string               `json:"code"`
	CreatedBy string               `json:"created_by"`
	CreatedAt string               `json:"created_at"`
	Note      string               `json:"note"`
	Items     []ReceiptLineRequest `json:"items"`
}

// Lines valida las líneas: al menos una, producto sin repetir, cantidad > 0, precio ≥ 0.
func (r CreateReceiptRequest) Lines() ([]entity.ReceiptItem, error) {
	if len(r.Items) == 0 {
		return nil, fmt.Errorf("%w: agregue al menos un producto", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(r.Items))
	out := make([]entity.ReceiptItem, 0, len(r.Items))
	for i, l := range r.Items {
		id := strings.TrimSpace(l.ProductID)
		if id == "" {
			return nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: el producto %s ya está en el comprobante", domain.ErrInvalidInput, id)
		}
		seen[id] = true
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		price := decimal.Zero
		if s := strings.TrimSpace(l.UnitPrice); s != "" {
			p, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("%w: línea %d: precio %q", domain.ErrInvalidInput, i+1, l.UnitPrice)
			}
			price = p
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: el precio no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		out = append(out, entity.ReceiptItem{ProductID: id, Quantity: l.Quantity, UnitPrice: price})
	}
	return out, nil
}
