package listview

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de ordenamiento.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection acepta "asc"/"desc" (vacío = asc).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("listview: dirección de orden desconocida %q", s)
}

type keyKind int

const (
	kindString keyKind = iota
	kindNumber
	kindTime
)

// SortKey clave de ordenamiento tipada: texto (sin distinguir mayúsculas), número o instante.
type SortKey[T any] struct {
	kind   keyKind
	text   func(T) string
	number func(T) decimal.Decimal
	time   func(T) time.Time
}

// StringKey ordena lexicográficamente sin distinguir mayúsculas.
func StringKey[T any](f func(T) string) SortKey[T] {
	return SortKey[T]{kind: kindString, text: f}
}

// NumberKey ordena numéricamente.
func NumberKey[T any](f func(T) decimal.Decimal) SortKey[T] {
	return SortKey[T]{kind: kindNumber, number: f}
}

// IntKey ordena numéricamente un campo entero.
func IntKey[T any](f func(T) int) SortKey[T] {
	return NumberKey(func(row T) decimal.Decimal { return decimal.NewFromInt(int64(f(row))) })
}

// TimeKey ordena por instante.
func TimeKey[T any](f func(T) time.Time) SortKey[T] {
	return SortKey[T]{kind: kindTime, time: f}
}

type decorated[T any] struct {
	v   sortValue
	row T
}

type sortValue struct {
	s string
	n decimal.Decimal
	t time.Time
}

func (k SortKey[T]) value(row T) sortValue {
	switch k.kind {
	case kindNumber:
		return sortValue{n: k.number(row)}
	case kindTime:
		return sortValue{t: k.time(row)}
	default:
		return sortValue{s: fold(k.text(row))}
	}
}

func (k SortKey[T]) compare(a, b sortValue) int {
	switch k.kind {
	case kindNumber:
		return a.n.Cmp(b.n)
	case kindTime:
		return a.t.Compare(b.t)
	default:
		return strings.Compare(a.s, b.s)
	}
}

// Sort devuelve una copia ordenada de rows. El orden es estable en ambos sentidos:
// las filas con clave igual conservan su orden relativo de entrada.
func Sort[T any](rows []T, key SortKey[T], dir Direction) []T {
	tmp := make([]decorated[T], len(rows))
	for i, r := range rows {
		tmp[i] = decorated[T]{v: key.value(r), row: r}
	}
	slices.SortStableFunc(tmp, func(a, b decorated[T]) int {
		c := key.compare(a.v, b.v)
		if dir == Desc {
			return -c
		}
		return c
	})
	out := make([]T, len(rows))
	for i, d := range tmp {
		out[i] = d.row
	}
	return out
}
