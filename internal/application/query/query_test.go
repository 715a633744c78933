package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vetstock-api/internal/application/query"
)

func TestMatcher_IgnoraMayusculas(t *testing.T) {
	m := query.NewMatcher("  VITAMINA ")
	assert.True(t, m.Match("Complejo vitamina B"))
	assert.True(t, m.Match("otro", "Vitamina C"))
	assert.False(t, m.Match("Antibiótico"))
	assert.True(t, query.NewMatcher("").Match("lo que sea"))
}

func TestCollator_OrdenEspanol(t *testing.T) {
	names := []string{"ñandú", "Nube", "oveja", "alfa"}
	c := query.NewCollator()
	query.Sort(names, false, c.Compare)
	assert.Equal(t, []string{"alfa", "Nube", "ñandú", "oveja"}, names)

	query.Sort(names, true, c.Compare)
	assert.Equal(t, []string{"oveja", "ñandú", "Nube", "alfa"}, names)
}

func TestCompareTimes_NilPrimero(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	assert.Equal(t, -1, query.CompareTimes(nil, &now))
	assert.Equal(t, 1, query.CompareTimes(&now, nil))
	assert.Equal(t, 0, query.CompareTimes(nil, nil))
	assert.Equal(t, -1, query.CompareTimes(&now, &later))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, query.Paginate(items, 2, 0))
	assert.Equal(t, []int{4, 5}, query.Paginate(items, 10, 3))
	assert.Equal(t, []int{3, 4, 5}, query.Paginate(items, 0, 2))
	assert.Empty(t, query.Paginate(items, 2, 9))
}

func TestInWindow(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	assert.True(t, query.InWindow(now.Add(-2*time.Hour), now, query.WindowToday))
	assert.False(t, query.InWindow(now.Add(-13*time.Hour), now, query.WindowToday))
	assert.True(t, query.InWindow(now.AddDate(0, 0, -6), now, query.WindowWeek))
	assert.False(t, query.InWindow(now.AddDate(0, 0, -8), now, query.WindowWeek))
	assert.True(t, query.InWindow(now.AddDate(0, 0, -20), now, query.WindowMonth))
	assert.False(t, query.InWindow(now.AddDate(0, -2, 0), now, query.WindowMonth))
	assert.True(t, query.InWindow(now.AddDate(-3, 0, 0), now, ""))
}
