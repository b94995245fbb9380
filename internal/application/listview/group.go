package listview

import (
	"fmt"
	"slices"
	"time"
)

// Grouping modo de agrupación por calendario de una vista.
type Grouping int

const (
	// GroupNone sin agrupación.
	GroupNone Grouping = iota
	// GroupMonthThenPaginate agrupa lo filtrado por mes y pagina cada mes de forma independiente.
	GroupMonthThenPaginate
	// PaginateThenGroupMonthDay pagina lo filtrado y agrupa la ventana por mes y luego por día.
	PaginateThenGroupMonthDay
)

// Section grupo de filas con etiqueta de calendario.
type Section[T any] struct {
	Key        string
	Label      string
	Items      []T
	Pagination *Pagination  // solo en GroupMonthThenPaginate
	Days       []Section[T] // solo en PaginateThenGroupMonthDay
}

// GroupByMonth agrupa por año-mes en la zona loc, de más reciente a más antiguo.
// Dentro de cada grupo se conserva el orden de entrada.
func GroupByMonth[T any](rows []T, ts func(T) time.Time, loc *time.Location) []Section[T] {
	return groupBy(rows, func(row T) (string, string, time.Time) {
		t := ts(row).In(loc)
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())), fmt.Sprintf("%02d/%04d", int(t.Month()), t.Year()), start
	})
}

// GroupByDay agrupa por día calendario en la zona loc, de más reciente a más antiguo.
func GroupByDay[T any](rows []T, ts func(T) time.Time, loc *time.Location) []Section[T] {
	return groupBy(rows, func(row T) (string, string, time.Time) {
		t := ts(row).In(loc)
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return start.Format("2006-01-02"), start.Format("02/01/2006"), start
	})
}

type bucket[T any] struct {
	section Section[T]
	start   time.Time
}

func groupBy[T any](rows []T, keyOf func(T) (key, label string, start time.Time)) []Section[T] {
	index := map[string]int{}
	var buckets []bucket[T]
	for _, r := range rows {
		key, label, start := keyOf(r)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket[T]{section: Section[T]{Key: key, Label: label}, start: start})
		}
		buckets[i].section.Items = append(buckets[i].section.Items, r)
	}
	// Más reciente primero; las claves son únicas, no hay empates.
	slices.SortFunc(buckets, func(a, b bucket[T]) int { return b.start.Compare(a.start) })
	out := make([]Section[T], len(buckets))
	for i, b := range buckets {
		out[i] = b.section
	}
	return out
}
