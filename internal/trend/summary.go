package trend

import (
	"maps"
	"slices"
)

// GenreSummary is the reduction of one genre across all years.
type GenreSummary struct {
	Count     int
	StartYear int
	EndYear   int
}

// Summary maps genre name to its reduction.
type Summary map[string]GenreSummary

// Summarize sums each genre's counts and records the first and last year it
// appears in. Iteration order does not matter.
func Summarize(t Table) Summary {
	s := make(Summary)
	for year, genres := range t {
		for g, n := range genres {
			gs, seen := s[g]
			if !seen {
				gs = GenreSummary{StartYear: year, EndYear: year}
			}
			gs.Count += n
			gs.StartYear = min(gs.StartYear, year)
			gs.EndYear = max(gs.EndYear, year)
			s[g] = gs
		}
	}
	return s
}

// Genres returns the genre names sorted alphabetically.
func (s Summary) Genres() []string {
	return slices.Sorted(maps.Keys(s))
}
