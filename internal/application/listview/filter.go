// Package listview implementa el pipeline de las vistas de lista de la consola:
// filtrar → ordenar → paginar → (agrupar), y el estado que lo re-deriva tras cada cambio.
package listview

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Predicate condición sobre una fila. Un Predicate nil equivale a "sin restricción".
type Predicate[T any] func(T) bool

// FilterFunc construye el predicado de un filtro con nombre a partir del valor elegido por el usuario.
// Devuelve nil cuando el valor no restringe nada.
type FilterFunc[T any] func(value string) Predicate[T]

// Filter devuelve las filas que cumplen todos los predicados (AND). No modifica rows.
func Filter[T any](rows []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(rows))
rows:
	for _, r := range rows {
		for _, p := range active {
			if !p(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}

// Unconstrained indica si el valor de un filtro es un marcador de "todos".
func Unconstrained(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all")
}

// fold normaliza para comparar sin distinguir mayúsculas (case folding Unicode).
// cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Search coincidencia por subcadena sin distinguir mayúsculas en cualquiera de los campos.
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	needle := fold(term)
	return func(row T) bool {
		for _, f := range fields {
			if strings.Contains(fold(f(row)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals filtro categórico de igualdad exacta sobre un campo de texto.
func Equals[T any](field func(T) string) FilterFunc[T] {
	return func(value string) Predicate[T] {
		if Unconstrained(value) {
			return nil
		}
		return func(row T) bool { return field(row) == value }
	}
}

// Status filtro por opciones con nombre (ej. stock: "in" / "out").
// Un valor que no figura en options no restringe.
func Status[T any](options map[string]Predicate[T]) FilterFunc[T] {
	return func(value string) Predicate[T] {
		if Unconstrained(value) {
			return nil
		}
		return options[value]
	}
}

// DateRange filtra por instante: desde el inicio del día from hasta el final del día to (inclusive),
// en la zona horaria loc. Cualquiera de los extremos puede ser nil.
func DateRange[T any](from, to *time.Time, loc *time.Location, ts func(T) time.Time) Predicate[T] {
	if from == nil && to == nil {
		return nil
	}
	var start, end time.Time
	if from != nil {
		start = startOfDay(*from, loc)
	}
	if to != nil {
		end = startOfDay(*to, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return func(row T) bool {
		t := ts(row)
		if from != nil && t.Before(start) {
			return false
		}
		if to != nil && t.After(end) {
			return false
		}
		return true
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
