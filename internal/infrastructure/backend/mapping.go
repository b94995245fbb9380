package backend

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// absoluteImageURL: rutas relativas → <base>/<ruta sin barra inicial>; http(s) se conserva; vacío sigue vacío.
func absoluteImageURL(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(raw, "/")
}

func toProduct(o object, base string) (*entity.Product, error) {
	stock, err := o.int("stock", "quantity")
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock negativo (%d)", domain.ErrMalformedResponse, stock)
	}
	price, _, err := o.decimal("importPrice", "import_price", "price")
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo (%s)", domain.ErrMalformedResponse, price)
	}
	updated, err := o.time("updatedAt", "updated_at", "createdAt", "created_at")
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:           o.str("id"),
		Code:         o.str("productCode", "product_code", "code"),
		Name:         o.str("name", "productName", "product_name"),
		ImageURL:     absoluteImageURL(base, o.str("imageUrl", "image_url")),
		CategoryName: o.str("categoryName", "category_name", "category.name"),
		BrandName:    o.str("brandName", "brand_name", "brand.name"),
		UnitName:     o.str("unitName", "unit_name", "unit.name"),
		LocationName: o.str("locationName", "location_name", "location.name"),
		CategoryID:   o.str("categoryId", "category_id", "category.id"),
		BrandID:      o.str("brandId", "brand_id", "brand.id"),
		UnitID:       o.str("unitId", "unit_id", "unit.id"),
		LocationID:   o.str("locationId", "location_id", "location.id"),
		ImportPrice:  price,
		Stock:        stock,
		UpdatedAt:    updated,
	}, nil
}

func priceFields(kind entity.ReceiptKind) []string {
	if kind == entity.ReceiptExport {
		return []string{"exportPrice", "export_price", "price", "unitPrice", "unit_price"}
	}
	return []string{"importPrice", "import_price", "price", "unitPrice", "unit_price"}
}

func codeFields(kind entity.ReceiptKind) []string {
	if kind == entity.ReceiptExport {
		return []string{"exportCode", "export_code", "code"}
	}
	return []string{"importCode", "import_code", "code"}
}

func toReceiptItem(o object, kind entity.ReceiptKind) (entity.ReceiptItem, error) {
	qty, err := o.int("quantity", "qty")
	if err != nil {
		return entity.ReceiptItem{}, err
	}
	price, _, err := o.decimal(priceFields(kind)...)
	if err != nil {
		return entity.ReceiptItem{}, err
	}
	return entity.ReceiptItem{
		ProductID:   o.str("productId", "product_id", "product.id"),
		ProductName: o.str("productName", "product_name", "name", "product.name"),
		ProductCode: o.str("productCode", "product_code", "product.productCode"),
		Category:    o.str("categoryName", "category_name"),
		Brand:       o.str("brandName", "brand_name"),
		Unit:        o.str("unitName", "unit_name"),
		Quantity:    qty,
		UnitPrice:   price,
	}, nil
}

func toReceipt(o object, kind entity.ReceiptKind) (*entity.Receipt, error) {
	created, err := o.time("createdAt", "created_at")
	if err != nil {
		return nil, err
	}
	lines, err := o.objects("details", "items")
	if err != nil {
		return nil, err
	}
	items := make([]entity.ReceiptItem, 0, len(lines))
	for i, l := range lines {
		it, err := toReceiptItem(l, kind)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i, err)
		}
		items = append(items, it)
	}
	r := &entity.Receipt{
		ID:        o.str("id"),
		Kind:      kind,
		Code:      o.str(codeFields(kind)...),
		CreatedBy: o.str("createdBy", "created_by", "createdByUsername"),
		CreatedAt: created,
		Note:      o.str("note", "reason"),
		Items:     items,
	}
	total, ok, err := o.decimal("totalAmount", "total_amount")
	if err != nil {
		return nil, err
	}
	if ok {
		r.TotalAmount = &total
	}
	return r, nil
}

func toUser(o object) (*entity.User, error) {
	created, err := o.time("createdAt", "created_at")
	if err != nil {
		return nil, err
	}
	birthday, err := o.optTime("birthday")
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:        o.str("id"),
		StaffCode: o.str("staffCode", "staff_code"),
		Username:  o.str("username"),
		Email:     o.str("email"),
		Phone:     o.str("phone"),
		Birthday:  birthday,
		Role:      strings.ToLower(o.str("role")),
		CreatedAt: created,
	}, nil
}

func toHistoryLog(o object) (*entity.HistoryLog, error) {
	at, err := o.time("performedAt", "performed_at", "createdAt", "created_at")
	if err != nil {
		return nil, err
	}
	return &entity.HistoryLog{
		ID:          o.str("id"),
		Username:    o.str("username", "user.username"),
		Action:      o.str("action"),
		PerformedAt: at,
		IsRead:      o.bool("isRead", "is_read", "read"),
	}, nil
}

func toReference(kind entity.ReferenceKind) func(object) (*entity.Reference, error) {
	return func(o object) (*entity.Reference, error) {
		return &entity.Reference{
			Kind:        kind,
			ID:          o.str("id"),
			Name:        o.str("name"),
			Slug:        o.str("slug"),
			Description: o.str("description"),
		}, nil
	}
}
