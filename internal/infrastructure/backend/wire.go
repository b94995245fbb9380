package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// object objeto JSON del backend. El backend mezcla camelCase y snake_case según el endpoint,
// así que cada lectura acepta varios nombres y toma el primero presente y no nulo.
type object map[string]json.RawMessage

var null = []byte("null")

func malformed(field string, err error) error {
	return fmt.Errorf("%w: campo %s: %v", domain.ErrMalformedResponse, field, err)
}

// raw devuelve el valor del primer nombre presente. Admite rutas "padre.hijo".
func (o object) raw(names ...string) (json.RawMessage, string) {
	for _, n := range names {
		if parent, child, nested := strings.Cut(n, "."); nested {
			var sub object
			if v, ok := o[parent]; ok && json.Unmarshal(v, &sub) == nil {
				if r, _ := sub.raw(child); r != nil {
					return r, n
				}
			}
			continue
		}
		if v, ok := o[n]; ok && !bytes.Equal(bytes.TrimSpace(v), null) {
			return v, n
		}
	}
	return nil, ""
}

// str lee texto; los números se aceptan y se formatean sin notación exponencial.
func (o object) str(names ...string) string {
	v, _ := o.raw(names...)
	if v == nil {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}
	return ""
}

func (o object) int(names ...string) (int, error) {
	v, name := o.raw(names...)
	if v == nil {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		var s string
		if json.Unmarshal(v, &s) != nil {
			return 0, malformed(name, err)
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, malformed(name, err)
	}
	return int(f), nil
}

func (o object) decimal(names ...string) (decimal.Decimal, bool, error) {
	v, name := o.raw(names...)
	if v == nil {
		return decimal.Zero, false, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(v); err != nil {
		return decimal.Zero, false, malformed(name, err)
	}
	return d, true, nil
}

func (o object) bool(names ...string) bool {
	v, _ := o.raw(names...)
	if v == nil {
		return false
	}
	var b bool
	if json.Unmarshal(v, &b) == nil {
		return b
	}
	var n float64
	if json.Unmarshal(v, &n) == nil {
		return n != 0
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		b, _ := strconv.ParseBool(s)
		return b
	}
	return false
}

// timeLayouts formatos que emite el backend: RFC 3339, fecha-hora local sin zona y fecha sola.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// time lee un instante. Acepta texto, epoch en milisegundos o el arreglo [y,m,d,h,min,s,nanos].
func (o object) time(names ...string) (time.Time, error) {
	v, name := o.raw(names...)
	if v == nil {
		return time.Time{}, nil
	}
	t, err := parseTime(v)
	if err != nil {
		return time.Time{}, malformed(name, err)
	}
	return t, nil
}

func (o object) optTime(names ...string) (*time.Time, error) {
	t, err := o.time(names...)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

func parseTime(v json.RawMessage) (time.Time, error) {
	var s string
	if json.Unmarshal(v, &s) == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("fecha no reconocida %q", s)
	}
	var ms int64
	if json.Unmarshal(v, &ms) == nil {
		return time.UnixMilli(ms), nil
	}
	var parts []int
	if json.Unmarshal(v, &parts) == nil && len(parts) >= 3 {
		p := make([]int, 7)
		copy(p, parts)
		return time.Date(p[0], time.Month(p[1]), p[2], p[3], p[4], p[5], p[6], time.Local), nil
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida %s", string(v))
}

func (o object) objects(names ...string) ([]object, error) {
	v, name := o.raw(names...)
	if v == nil {
		return nil, nil
	}
	var out []object
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, malformed(name, err)
	}
	return out, nil
}

// decodeObject decodifica un único objeto.
func decodeObject(raw []byte) (object, error) {
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if o == nil {
		return nil, fmt.Errorf("%w: cuerpo vacío", domain.ErrMalformedResponse)
	}
	return o, nil
}

// decodeList acepta un arreglo o un sobre {data|content|items: [...]}.
func decodeList(raw []byte) ([]object, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, null) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var out []object
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		return out, nil
	}
	env, err := decodeObject(trimmed)
	if err != nil {
		return nil, err
	}
	list, err := env.objects("data", "content", "items")
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("%w: se esperaba una lista", domain.ErrMalformedResponse)
	}
	return list, nil
}

// mapList aplica fn a cada objeto y corta en el primer error.
func mapList[T any](objs []object, fn func(object) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(objs))
	for i, o := range objs {
		v, err := fn(o)
		if err != nil {
			return nil, fmt.Errorf("elemento %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
