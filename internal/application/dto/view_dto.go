package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/listview"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// ViewQueryRequest criterios de filtrado de una vista. Las fechas son YYYY-MM-DD.
type ViewQueryRequest struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters"`
	From    string            `json:"from"`
	To      string            `json:"to"`
}

// ToQuery convierte a la consulta del pipeline interpretando las fechas en loc.
func (r ViewQueryRequest) ToQuery(loc *time.Location) (listview.Query, error) {
	q := listview.Query{Search: r.Search, Filters: r.Filters}
	var err error
	if q.From, err = parseDay(r.From, loc); err != nil {
		return q, err
	}
	if q.To, err = parseDay(r.To, loc); err != nil {
		return q, err
	}
	return q, nil
}

func parseDay(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (se espera AAAA-MM-DD)", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// SortRequest orden de una vista. Toggle alterna sobre el campo activo en lugar de fijar Dir.
type SortRequest struct {
	Field  string `json:"field"`
	Dir    string `json:"dir"`
	Toggle bool   `json:"toggle"`
}

// PaginationRequest página o filas por página. Group selecciona el mes en vistas agrupadas.
type PaginationRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Group    string `json:"group"`
}

// SectionResponse grupo de calendario de una vista.
type SectionResponse[R any] struct {
	Key        string               `json:"key"`
	Label      string               `json:"label"`
	Items      []R                  `json:"items"`
	Pagination *listview.Pagination `json:"pagination,omitempty"`
	Days       []SectionResponse[R] `json:"days,omitempty"`
}

// ViewResponse estado derivado de una vista lista para pintar.
type ViewResponse[R any] struct {
	Name          string               `json:"name"`
	Loaded        bool                 `json:"loaded"`
	Query         listview.Query       `json:"query"`
	Sort          listview.SortState   `json:"sort"`
	PageSize      int                  `json:"page_size"`
	PageSizes     []int                `json:"page_sizes,omitempty"`
	FilteredTotal int                  `json:"filtered_total"`
	Pagination    *listview.Pagination `json:"pagination,omitempty"`
	Items         []R                  `json:"items,omitempty"`
	Sections      []SectionResponse[R] `json:"sections,omitempty"`
	Options       map[string][]string  `json:"options,omitempty"`
}

// NewViewResponse proyecta un snapshot con la función de fila dada.
func NewViewResponse[T, R any](name string, snap listview.Snapshot[T], grouping listview.Grouping, project func(T) R) ViewResponse[R] {
	resp := ViewResponse[R]{
		Name:          name,
		Loaded:        snap.Loaded,
		Query:         snap.Query,
		Sort:          snap.Sort,
		PageSize:      snap.PageSize,
		FilteredTotal: snap.FilteredTotal,
		Sections:      projectSections(snap.Sections, project),
	}
	if grouping != listview.GroupMonthThenPaginate {
		pg := snap.Page.Pagination
		resp.Pagination = &pg
	}
	if grouping == listview.GroupNone {
		resp.Items = projectRows(snap.Page.Items, project)
	}
	return resp
}

func projectRows[T, R any](rows []T, project func(T) R) []R {
	out := make([]R, len(rows))
	for i, r := range rows {
		out[i] = project(r)
	}
	return out
}

func projectSections[T, R any](secs []listview.Section[T], project func(T) R) []SectionResponse[R] {
	if len(secs) == 0 {
		return nil
	}
	out := make([]SectionResponse[R], len(secs))
	for i, s := range secs {
		out[i] = SectionResponse[R]{
			Key:        s.Key,
			Label:      s.Label,
			Items:      projectRows(s.Items, project),
			Pagination: s.Pagination,
			Days:       projectSections(s.Days, project),
		}
	}
	return out
}
