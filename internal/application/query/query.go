// Package query reúne los helpers de listado compartidos por los casos de uso:
// búsqueda insensible a mayúsculas, orden con collation de idioma,
// ventanas de fecha y paginación sobre colecciones ya cargadas.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Matcher busca un término en varios campos usando case folding Unicode.
type Matcher struct {
	fold   cases.Caser
	needle string
}

// NewMatcher prepara el término de búsqueda. Un término vacío coincide con todo.
func NewMatcher(search string) Matcher {
	fold := cases.Fold()
	return Matcher{fold: fold, needle: fold.String(strings.TrimSpace(search))}
}

// Match indica si alguno de los campos contiene el término.
func (m Matcher) Match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.needle) {
			return true
		}
	}
	return false
}

// Collator compara textos con las reglas del español (ñ, acentos) ignorando mayúsculas.
// No es seguro para uso concurrente: crear uno por listado.
type Collator struct {
	c *collate.Collator
}

func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Spanish, collate.IgnoreCase)}
}

func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// Sort ordena de forma estable según cmpFn; desc invierte el resultado.
func Sort[T any](items []T, desc bool, cmpFn func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if desc {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})
}

// CompareTimes compara fechas opcionales; nil va antes que cualquier fecha.
func CompareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

// CompareInts atajo para claves numéricas.
func CompareInts(a, b int) int {
	return cmp.Compare(a, b)
}

// Paginate recorta la página pedida. limit <= 0 devuelve desde offset hasta el final.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// Ventanas de fecha aceptadas por los listados.
const (
	WindowAll   = "all"
	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// InWindow indica si t cae en la ventana relativa a now: today = mismo día calendario,
// week = últimos 7 días, month = desde la misma fecha del mes anterior.
func InWindow(t, now time.Time, window string) bool {
	switch window {
	case WindowToday:
		y1, m1, d1 := t.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case WindowMonth:
		return !t.Before(now.AddDate(0, -1, 0))
	default:
		return true
	}
}
