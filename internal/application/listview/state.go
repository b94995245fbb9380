package listview

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// Loader obtiene la colección completa desde el backend.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Spec describe cómo se filtra, ordena, pagina y agrupa una vista concreta.
type Spec[T any] struct {
	Name            string
	ID              func(T) string
	SearchFields    []func(T) string
	Filters         map[string]FilterFunc[T]
	SortKeys        map[string]SortKey[T]
	DefaultSort     SortState
	Timestamp       func(T) time.Time // habilita el rango de fechas y la agrupación
	Grouping        Grouping
	DefaultPageSize int
	PageSizes       []int // tamaños admitidos; vacío = cualquiera > 0
	Location        *time.Location
}

// Query criterios de filtrado elegidos por el usuario.
type Query struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters,omitempty"`
	From    *time.Time        `json:"from,omitempty"`
	To      *time.Time        `json:"to,omitempty"`
}

// SortState campo y sentido de ordenamiento activos. Field vacío conserva el orden de carga.
type SortState struct {
	Field string    `json:"field"`
	Dir   Direction `json:"dir"`
}

// Snapshot vista derivada lista para renderizar.
type Snapshot[T any] struct {
	Loaded        bool
	Query         Query
	Sort          SortState
	PageSize      int
	FilteredTotal int
	Page          Page[T] // ventana en GroupNone y PaginateThenGroupMonthDay
	Sections      []Section[T]
}

// State colección autoritativa a la fecha del último fetch más la consulta que la proyecta.
// Es seguro para uso concurrente desde varios handlers.
type State[T any] struct {
	spec   Spec[T]
	load   Loader[T]
	loc    *time.Location
	flight singleflight.Group

	mu         sync.Mutex
	rows       []T
	loaded     bool
	stale      bool
	generation uint64
	// epoch sube con cada MarkStale y Refresh: una carga iniciada antes no los satisface.
	epoch      uint64
	storedAt   uint64
	query      Query
	sort       SortState
	page       int
	pageSize   int
	groupPages map[string]int
}

// NewState construye el estado de una vista. No realiza ninguna carga.
func NewState[T any](spec Spec[T], load Loader[T]) *State[T] {
	if spec.ID == nil {
		panic("listview: Spec.ID es obligatorio")
	}
	if spec.DefaultPageSize <= 0 {
		spec.DefaultPageSize = 10
	}
	if spec.DefaultSort.Dir == "" {
		spec.DefaultSort.Dir = Asc
	}
	loc := spec.Location
	if loc == nil {
		loc = time.Local
	}
	s := &State[T]{spec: spec, load: load, loc: loc}
	s.resetQueryLocked()
	return s
}

// Name nombre de la vista.
func (s *State[T]) Name() string { return s.spec.Name }

func (s *State[T]) resetQueryLocked() {
	s.query = Query{}
	s.sort = s.spec.DefaultSort
	s.page = 1
	s.pageSize = s.spec.DefaultPageSize
	s.groupPages = map[string]int{}
}

// Ensure carga la colección si nunca se cargó o quedó marcada como desactualizada.
// Es la carga "al montar": una vista ya cargada no vuelve a pedir datos por sí sola.
func (s *State[T]) Ensure(ctx context.Context) error {
	s.mu.Lock()
	fresh := s.loaded && !s.stale
	s.mu.Unlock()
	if fresh {
		return nil
	}
	return s.fetch(ctx)
}

// Refresh vuelve a pedir la colección completa al backend.
func (s *State[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()
	return s.fetch(ctx)
}

func (s *State[T]) fetch(ctx context.Context) error {
	s.mu.Lock()
	gen, epoch := s.generation, s.epoch
	s.mu.Unlock()

	// Las cargas concurrentes de la misma generación y época comparten una sola petición.
	key := strconv.FormatUint(gen, 10) + "/" + strconv.FormatUint(epoch, 10)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return err
	}
	rows, _ := v.([]T)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// La vista se desmontó mientras la petición estaba en vuelo: se descarta el resultado.
		return nil
	}
	if s.loaded && epoch < s.storedAt {
		// Ya se guardó una carga más reciente.
		return nil
	}
	s.storedAt = epoch
	s.rows = slices.Clone(rows)
	s.loaded = true
	// Un MarkStale llegado durante la petición sigue pendiente.
	s.stale = epoch != s.epoch
	s.clampLocked()
	return nil
}

// MarkStale fuerza que el próximo Ensure vuelva a cargar (ej. tras crear una entidad).
func (s *State[T]) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.epoch++
	s.mu.Unlock()
}

// Reset descarta filas y consulta ("desmontar"). Las cargas en vuelo se ignoran al terminar.
func (s *State[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.rows = nil
	s.loaded = false
	s.stale = false
	s.resetQueryLocked()
}

// SetQuery reemplaza los criterios de filtrado y vuelve a la página 1.
func (s *State[T]) SetQuery(q Query) error {
	for name := range q.Filters {
		if _, ok := s.spec.Filters[name]; !ok {
			return fmt.Errorf("%w: filtro %q desconocido en %s", domain.ErrInvalidInput, name, s.spec.Name)
		}
	}
	if (q.From != nil || q.To != nil) && s.spec.Timestamp == nil {
		return fmt.Errorf("%w: %s no admite rango de fechas", domain.ErrInvalidInput, s.spec.Name)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidInput)
	}
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters

	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.resetPagesLocked()
	return nil
}

// SetSort fija campo y sentido y vuelve a la página 1. Un campo vacío restaura el orden de carga.
func (s *State[T]) SetSort(field string, dir Direction) error {
	if field != "" {
		if _, ok := s.spec.SortKeys[field]; !ok {
			return fmt.Errorf("%w: campo de orden %q desconocido en %s", domain.ErrInvalidInput, field, s.spec.Name)
		}
	}
	if dir != Asc && dir != Desc {
		return fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, dir)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = SortState{Field: field, Dir: dir}
	s.resetPagesLocked()
	return nil
}

// ToggleSort alterna asc/desc sobre el campo activo; un campo nuevo empieza ascendente.
func (s *State[T]) ToggleSort(field string) error {
	s.mu.Lock()
	dir := Asc
	if s.sort.Field == field && s.sort.Dir == Asc {
		dir = Desc
	}
	s.mu.Unlock()
	return s.SetSort(field, dir)
}

// SetPageSize cambia las filas por página y vuelve a la página 1 (también en cada grupo).
func (s *State[T]) SetPageSize(n int) error {
	if n <= 0 || (len(s.spec.PageSizes) > 0 && !slices.Contains(s.spec.PageSizes, n)) {
		return fmt.Errorf("%w: tamaño de página %d no admitido en %s", domain.ErrInvalidInput, n, s.spec.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
	s.resetPagesLocked()
	return nil
}

// SetPage mueve la ventana a la página n, ajustada al rango existente.
func (s *State[T]) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(n, len(s.visibleLocked()), s.pageSize)
}

// SetGroupPage mueve la página de un grupo mensual (solo en GroupMonthThenPaginate).
func (s *State[T]) SetGroupPage(key string, n int) error {
	if s.spec.Grouping != GroupMonthThenPaginate {
		return fmt.Errorf("%w: %s no pagina por grupo", domain.ErrInvalidInput, s.spec.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sec := range GroupByMonth(s.visibleLocked(), s.spec.Timestamp, s.loc) {
		if sec.Key == key {
			s.groupPages[key] = ClampPage(n, len(sec.Items), s.pageSize)
			return nil
		}
	}
	return fmt.Errorf("%w: grupo %q", domain.ErrNotFound, key)
}

// Find busca una fila por ID en la colección cargada.
func (s *State[T]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if s.spec.ID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Replace sustituye la fila con el mismo ID por la representación del servidor.
func (s *State[T]) Replace(row T) bool {
	id := s.spec.ID(row)
	return s.Update(id, func(T) T { return row })
}

// Update aplica fn a la fila con ese ID. Devuelve false si no está cargada.
func (s *State[T]) Update(id string, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if s.spec.ID(r) == id {
			s.rows[i] = fn(r)
			s.clampLocked()
			return true
		}
	}
	return false
}

// Remove quita la fila y ajusta la página para no quedar más allá de la nueva última página.
func (s *State[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if s.spec.ID(r) == id {
			s.rows = slices.Delete(slices.Clone(s.rows), i, i+1)
			s.clampLocked()
			return true
		}
	}
	return false
}

// Rows copia de la colección cruda.
func (s *State[T]) Rows() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows)
}

// Visible secuencia filtrada y ordenada completa (sin paginar), ej. para exportar.
func (s *State[T]) Visible() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

// Distinct valores no vacíos de un campo en orden de aparición (opciones de filtro).
func (s *State[T]) Distinct(field func(T) string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, r := range s.rows {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Snapshot deriva la vista actual: filtrar → ordenar → paginar → agrupar.
func (s *State[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.visibleLocked()
	snap := Snapshot[T]{
		Loaded:        s.loaded,
		Query:         s.query,
		Sort:          s.sort,
		PageSize:      s.pageSize,
		FilteredTotal: len(visible),
	}
	switch s.spec.Grouping {
	case GroupMonthThenPaginate:
		for _, sec := range GroupByMonth(visible, s.spec.Timestamp, s.loc) {
			p := Paginate(sec.Items, s.groupPage(sec.Key), s.pageSize)
			sec.Items = p.Items
			pg := p.Pagination
			sec.Pagination = &pg
			snap.Sections = append(snap.Sections, sec)
		}
	case PaginateThenGroupMonthDay:
		snap.Page = Paginate(visible, s.page, s.pageSize)
		for _, month := range GroupByMonth(snap.Page.Items, s.spec.Timestamp, s.loc) {
			month.Days = GroupByDay(month.Items, s.spec.Timestamp, s.loc)
			snap.Sections = append(snap.Sections, month)
		}
	default:
		snap.Page = Paginate(visible, s.page, s.pageSize)
	}
	return snap
}

func (s *State[T]) groupPage(key string) int {
	if p, ok := s.groupPages[key]; ok {
		return p
	}
	return 1
}

func (s *State[T]) resetPagesLocked() {
	s.page = 1
	s.groupPages = map[string]int{}
}

// clampLocked mantiene las páginas dentro del rango tras un cambio en los datos.
func (s *State[T]) clampLocked() {
	visible := s.visibleLocked()
	s.page = ClampPage(s.page, len(visible), s.pageSize)
	if s.spec.Grouping != GroupMonthThenPaginate || len(s.groupPages) == 0 {
		return
	}
	pages := map[string]int{}
	for _, sec := range GroupByMonth(visible, s.spec.Timestamp, s.loc) {
		if p, ok := s.groupPages[sec.Key]; ok {
			pages[sec.Key] = ClampPage(p, len(sec.Items), s.pageSize)
		}
	}
	s.groupPages = pages
}

func (s *State[T]) visibleLocked() []T {
	preds := []Predicate[T]{Search(s.query.Search, s.spec.SearchFields...)}
	for name, value := range s.query.Filters {
		if build, ok := s.spec.Filters[name]; ok {
			preds = append(preds, build(value))
		}
	}
	if s.spec.Timestamp != nil {
		preds = append(preds, DateRange(s.query.From, s.query.To, s.loc, s.spec.Timestamp))
	}
	rows := Filter(s.rows, preds...)
	if key, ok := s.spec.SortKeys[s.sort.Field]; ok {
		rows = Sort(rows, key, s.sort.Dir)
	}
	return rows
}
