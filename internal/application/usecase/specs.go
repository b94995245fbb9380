package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/application/listview"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Definiciones de las vistas de lista: campos de búsqueda, filtros, claves de orden y paginación.

func productID(p entity.Product) string       { return p.ID }
func productName(p entity.Product) string     { return p.Name }
func productCode(p entity.Product) string     { return p.Code }
func productCategory(p entity.Product) string { return p.CategoryName }
func productBrand(p entity.Product) string    { return p.BrandName }

var stockStatus = listview.Status(map[string]listview.Predicate[entity.Product]{
	"in":  func(p entity.Product) bool { return p.Stock > 0 },
	"out": func(p entity.Product) bool { return p.Stock == 0 },
})

func productSortKeys() map[string]listview.SortKey[entity.Product] {
	return map[string]listview.SortKey[entity.Product]{
		"name":         listview.StringKey(productName),
		"productCode":  listview.StringKey(productCode),
		"importPrice":  listview.NumberKey(func(p entity.Product) decimal.Decimal { return p.ImportPrice }),
		"categoryName": listview.StringKey(productCategory),
		"brandName":    listview.StringKey(productBrand),
		"unitName":     listview.StringKey(func(p entity.Product) string { return p.UnitName }),
		"stock":        listview.IntKey(func(p entity.Product) int { return p.Stock }),
		"updatedAt":    listview.TimeKey(func(p entity.Product) time.Time { return p.UpdatedAt }),
	}
}

// ProductListSpec catálogo: 5 filas por página, orden inicial por nombre.
func ProductListSpec(loc *time.Location) listview.Spec[entity.Product] {
	return listview.Spec[entity.Product]{
		Name:         ViewProducts,
		ID:           productID,
		SearchFields: []func(entity.Product) string{productName, productCode},
		Filters: map[string]listview.FilterFunc[entity.Product]{
			"category": listview.Equals(productCategory),
			"brand":    listview.Equals(productBrand),
			"stock":    stockStatus,
		},
		SortKeys:        productSortKeys(),
		DefaultSort:     listview.SortState{Field: "name", Dir: listview.Asc},
		DefaultPageSize: 5,
		PageSizes:       []int{5, 10, 20},
		Location:        loc,
	}
}

// InventorySpec informe de existencias: conserva el orden de carga hasta que se elija una columna.
func InventorySpec(loc *time.Location) listview.Spec[entity.Product] {
	return listview.Spec[entity.Product]{
		Name:         ViewInventory,
		ID:           productID,
		SearchFields: []func(entity.Product) string{productName, productCode},
		Filters: map[string]listview.FilterFunc[entity.Product]{
			"category": listview.Equals(productCategory),
			"brand":    listview.Equals(productBrand),
			"stock":    stockStatus,
		},
		SortKeys:        productSortKeys(),
		DefaultPageSize: 5,
		PageSizes:       []int{5, 10, 20},
		Location:        loc,
	}
}

func userName(u entity.User) string { return u.Username }

// StaffSpec personal: 10 por página, orden por usuario. createdAt se ordena como fecha.
func StaffSpec(loc *time.Location) listview.Spec[entity.User] {
	return listview.Spec[entity.User]{
		Name: ViewStaff,
		ID:   func(u entity.User) string { return u.ID },
		SearchFields: []func(entity.User) string{
			userName,
			func(u entity.User) string { return u.StaffCode },
			func(u entity.User) string { return u.Email },
		},
		Filters: map[string]listview.FilterFunc[entity.User]{
			"role": listview.Equals(func(u entity.User) string { return u.Role }),
		},
		SortKeys: map[string]listview.SortKey[entity.User]{
			"username":  listview.StringKey(userName),
			"staffCode": listview.StringKey(func(u entity.User) string { return u.StaffCode }),
			"email":     listview.StringKey(func(u entity.User) string { return u.Email }),
			"role":      listview.StringKey(func(u entity.User) string { return u.Role }),
			"createdAt": listview.TimeKey(func(u entity.User) time.Time { return u.CreatedAt }),
		},
		DefaultSort:     listview.SortState{Field: "username", Dir: listview.Asc},
		DefaultPageSize: 10,
		Location:        loc,
	}
}

func receiptCreatedAt(r entity.Receipt) time.Time { return r.CreatedAt }

// ReceiptSpec comprobantes de un tipo: más recientes primero, agrupados por mes
// y cada mes paginado por separado (25 por página).
func ReceiptSpec(kind entity.ReceiptKind, loc *time.Location) listview.Spec[entity.Receipt] {
	name := ViewImportReceipts
	if kind == entity.ReceiptExport {
		name = ViewExportReceipts
	}
	return listview.Spec[entity.Receipt]{
		Name: name,
		ID:   func(r entity.Receipt) string { return r.ID },
		SearchFields: []func(entity.Receipt) string{
			func(r entity.Receipt) string { return r.Code },
			func(r entity.Receipt) string { return r.CreatedBy },
			func(r entity.Receipt) string { return r.Note },
		},
		SortKeys: map[string]listview.SortKey[entity.Receipt]{
			"createdAt": listview.TimeKey(receiptCreatedAt),
			"code":      listview.StringKey(func(r entity.Receipt) string { return r.Code }),
			"createdBy": listview.StringKey(func(r entity.Receipt) string { return r.CreatedBy }),
			"total":     listview.NumberKey(func(r entity.Receipt) decimal.Decimal { return r.Total() }),
		},
		DefaultSort:     listview.SortState{Field: "createdAt", Dir: listview.Desc},
		Timestamp:       receiptCreatedAt,
		Grouping:        listview.GroupMonthThenPaginate,
		DefaultPageSize: 25,
		PageSizes:       []int{25, 30, 50},
		Location:        loc,
	}
}

func logPerformedAt(l entity.HistoryLog) time.Time { return l.PerformedAt }

// HistoryLogSpec registro de actividad: más reciente primero, 10 por página,
// la ventana se agrupa por mes y día.
func HistoryLogSpec(loc *time.Location) listview.Spec[entity.HistoryLog] {
	return listview.Spec[entity.HistoryLog]{
		Name: ViewHistoryLogs,
		ID:   func(l entity.HistoryLog) string { return l.ID },
		SearchFields: []func(entity.HistoryLog) string{
			func(l entity.HistoryLog) string { return l.Username },
			func(l entity.HistoryLog) string { return l.Action },
		},
		Filters: map[string]listview.FilterFunc[entity.HistoryLog]{
			"status": listview.Status(map[string]listview.Predicate[entity.HistoryLog]{
				"read":   func(l entity.HistoryLog) bool { return l.IsRead },
				"unread": func(l entity.HistoryLog) bool { return !l.IsRead },
			}),
		},
		SortKeys: map[string]listview.SortKey[entity.HistoryLog]{
			"performedAt": listview.TimeKey(logPerformedAt),
			"username":    listview.StringKey(func(l entity.HistoryLog) string { return l.Username }),
		},
		DefaultSort:     listview.SortState{Field: "performedAt", Dir: listview.Desc},
		Timestamp:       logPerformedAt,
		Grouping:        listview.PaginateThenGroupMonthDay,
		DefaultPageSize: 10,
		Location:        loc,
	}
}
