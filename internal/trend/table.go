// Package trend aggregates movies into a year → genre → count table and
// reduces that table into per-genre totals and year ranges.
package trend

import (
	"cmp"
	"maps"
	"slices"
)

// Table counts (movie, genre) pairs per release year. Every stored count is
// positive.
type Table map[int]map[string]int

// Cell is one (year, genre, count) entry of a Table.
type Cell struct {
	Year  int
	Genre string
	Count int
}

// NewTable returns an empty table.
func NewTable() Table { return make(Table) }

// Add counts one more movie of genre released in year.
func (t Table) Add(year int, genre string) { t.AddN(year, genre, 1) }

// AddN adds n to the cell; n <= 0 is ignored so cells stay positive.
func (t Table) AddN(year int, genre string, n int) {
	if n <= 0 {
		return
	}
	genres := t[year]
	if genres == nil {
		genres = make(map[string]int)
		t[year] = genres
	}
	genres[genre] += n
}

// Count returns the cell value, 0 when absent.
func (t Table) Count(year int, genre string) int { return t[year][genre] }

// Len returns the number of cells.
func (t Table) Len() int {
	n := 0
	for _, genres := range t {
		n += len(genres)
	}
	return n
}

// Years returns the years present, ascending.
func (t Table) Years() []int {
	return slices.Sorted(maps.Keys(t))
}

// Genres returns every genre present in any year, sorted by name.
func (t Table) Genres() []string {
	set := make(map[string]struct{})
	for _, genres := range t {
		for g := range genres {
			set[g] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Cells flattens the table, ordered by year then genre.
func (t Table) Cells() []Cell {
	cells := make([]Cell, 0, t.Len())
	for year, genres := range t {
		for g, n := range genres {
			cells = append(cells, Cell{Year: year, Genre: g, Count: n})
		}
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Genre, b.Genre))
	})
	return cells
}

// Equal reports whether both tables hold the same cells.
func (t Table) Equal(o Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	for year, genres := range t {
		for g, n := range genres {
			if o.Count(year, g) != n {
				return false
			}
		}
	}
	return true
}
