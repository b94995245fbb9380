package listview

// Pagination metadatos de una ventana de página (página 1-based).
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Page ventana visible de una secuencia.
type Page[T any] struct {
	Items []T
	Pagination
}

// TotalPages número de páginas para n elementos (0 si no hay elementos).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage ajusta page al rango [1, última página]. Sin elementos, la página es 1.
func ClampPage(page, n, size int) int {
	last := TotalPages(n, size)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate corta rows en la ventana [(page-1)·size, page·size).
// Una página fuera de rango se ajusta a la última existente en lugar de devolver una página vacía.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(rows)
		if size == 0 {
			size = 1
		}
	}
	page = ClampPage(page, len(rows), size)
	start := (page - 1) * size
	end := start + size
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	items := make([]T, end-start)
	copy(items, rows[start:end])
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   size,
			TotalPages: TotalPages(len(rows), size),
			TotalItems: len(rows),
		},
	}
}
