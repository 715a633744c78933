package memory

import (
	"cmp"
	"slices"
	"time"
)

// sortByCreated da un orden determinista a los listados (más reciente primero),
// como el ORDER BY created_at DESC de PostgreSQL.
func sortByCreated[T any](list []T, key func(T) (time.Time, string)) {
	slices.SortFunc(list, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(ia, ib)
	})
}
