package trend

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/backmassage/genretrends/internal/dataset"
	"github.com/backmassage/genretrends/internal/logging"
)

func movie(date string, genres ...string) dataset.Movie {
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = fmt.Sprintf(`{"id": %d, "name": %q}`, i, g)
	}
	return dataset.Movie{ReleaseDate: date, Genres: "[" + strings.Join(parts, ", ") + "]"}
}

// --- Table tests ---

func TestTable_AddAndCount(t *testing.T) {
	tb := NewTable()
	tb.Add(2000, "Action")
	tb.Add(2000, "Action")
	tb.Add(2000, "Drama")
	tb.Add(1999, "Action")
	tb.AddN(2001, "Horror", 0)
	tb.AddN(2001, "Horror", -3)

	if got := tb.Count(2000, "Action"); got != 2 {
		t.Errorf("Count(2000, Action) = %d, want 2", got)
	}
	if got := tb.Count(1990, "Action"); got != 0 {
		t.Errorf("Count of absent year = %d, want 0", got)
	}
	if got := tb.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3 (non-positive AddN ignored)", got)
	}
	if got := tb.Years(); !slices.Equal(got, []int{1999, 2000}) {
		t.Errorf("Years() = %v", got)
	}
	if got := tb.Genres(); !slices.Equal(got, []string{"Action", "Drama"}) {
		t.Errorf("Genres() = %v", got)
	}
}

func TestTable_CellsOrdered(t *testing.T) {
	tb := NewTable()
	tb.AddN(2001, "Drama", 4)
	tb.AddN(1999, "Western", 1)
	tb.AddN(2001, "Action", 2)

	want := []Cell{
		{1999, "Western", 1},
		{2001, "Action", 2},
		{2001, "Drama", 4},
	}
	if got := tb.Cells(); !slices.Equal(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}

func TestTable_Equal(t *testing.T) {
	a, b := NewTable(), NewTable()
	a.AddN(2000, "Action", 2)
	b.AddN(2000, "Action", 2)
	if !a.Equal(b) {
		t.Error("identical tables should be equal")
	}
	b.Add(2000, "Drama")
	if a.Equal(b) || b.Equal(a) {
		t.Error("tables with different cells should not be equal")
	}
}

// --- Aggregate tests ---

func TestAggregate_EndToEnd(t *testing.T) {
	movies := []dataset.Movie{
		{ID: "1", Genres: `[{"name":"Action"}]`, ReleaseDate: "2000-01-01", Line: 2},
		{ID: "2", Genres: `invalid-json`, ReleaseDate: "2000-05-05", Line: 3},
	}
	var buf bytes.Buffer
	tb, st := Aggregate(slices.Values(movies), logging.New(&buf, "info"))

	want := NewTable()
	want.Add(2000, "Action")
	if !tb.Equal(want) {
		t.Errorf("table = %v, want %v", tb, want)
	}
	if st != (AggregateStats{Movies: 2, GenreErrors: 1, Pairs: 1}) {
		t.Errorf("stats = %+v", st)
	}
	if n := strings.Count(buf.String(), "Skipping invalid JSON in genres"); n != 1 {
		t.Errorf("got %d diagnostics, want 1: %s", n, buf.String())
	}

	s := Summarize(tb)
	if len(s) != 1 || s["Action"] != (GenreSummary{Count: 1, StartYear: 2000, EndYear: 2000}) {
		t.Errorf("summary = %+v", s)
	}
}

func TestAggregate_UndatedDroppedSilently(t *testing.T) {
	movies := []dataset.Movie{
		movie("", "Action"),
		movie("unknown", "Drama"),
		{ReleaseDate: "", Genres: "not json either"},
		movie("2010-03-03", "Comedy"),
	}
	var buf bytes.Buffer
	tb, st := Aggregate(slices.Values(movies), logging.New(&buf, "debug"))

	if st.Undated != 3 || st.GenreErrors != 0 || st.Pairs != 1 {
		t.Errorf("stats = %+v, want 3 undated, 0 genre errors, 1 pair", st)
	}
	if tb.Len() != 1 || tb.Count(2010, "Comedy") != 1 {
		t.Errorf("table = %v", tb)
	}
	if buf.Len() != 0 {
		t.Errorf("undated rows must not log, got: %s", buf.String())
	}
}

func TestAggregate_NoGenresNoCells(t *testing.T) {
	movies := []dataset.Movie{
		movie("2000-01-01"),
		{ReleaseDate: "2000-01-01", Genres: `[{"id": 1}]`},
	}
	tb, st := Aggregate(slices.Values(movies), logging.Nop())
	if tb.Len() != 0 {
		t.Errorf("table = %v, want empty", tb)
	}
	if st.Movies != 2 || st.Pairs != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestAggregate_DuplicateGenreCountsTwice(t *testing.T) {
	tb, _ := Aggregate(slices.Values([]dataset.Movie{movie("1984", "Drama", "Drama")}), logging.Nop())
	if got := tb.Count(1984, "Drama"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

// TestAggregate_MatchesBruteForce checks every cell against a direct count
// over randomly generated movies.
func TestAggregate_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pool := []string{"Action", "Drama", "Comedy", "Horror", "Sci-Fi"}

	type row struct {
		year   int
		genres []string
	}
	var rows []row
	var movies []dataset.Movie
	for range 500 {
		year := 1950 + rng.IntN(70)
		var gs []string
		for _, g := range pool {
			if rng.IntN(3) == 0 {
				gs = append(gs, g)
			}
		}
		rows = append(rows, row{year, gs})
		movies = append(movies, movie(fmt.Sprintf("%d-06-15", year), gs...))
	}

	tb, st := Aggregate(slices.Values(movies), logging.Nop())

	pairs := 0
	for y := 1950; y < 2020; y++ {
		for _, g := range pool {
			want := 0
			for _, r := range rows {
				if r.year == y && slices.Contains(r.genres, g) {
					want++
				}
			}
			pairs += want
			if got := tb.Count(y, g); got != want {
				t.Fatalf("Count(%d, %s) = %d, want %d", y, g, got, want)
			}
		}
	}
	if st.Pairs != pairs {
		t.Errorf("Pairs = %d, want %d", st.Pairs, pairs)
	}

	checkSummary(t, tb, Summarize(tb))
}

// --- Summarize tests ---

func TestSummarize(t *testing.T) {
	tb := NewTable()
	tb.AddN(1995, "Action", 3)
	tb.AddN(2003, "Action", 1)
	tb.AddN(1999, "Action", 2)
	tb.AddN(1999, "Drama", 5)

	s := Summarize(tb)
	want := Summary{
		"Action": {Count: 6, StartYear: 1995, EndYear: 2003},
		"Drama":  {Count: 5, StartYear: 1999, EndYear: 1999},
	}
	if len(s) != len(want) {
		t.Fatalf("summary = %+v, want %+v", s, want)
	}
	for g, gs := range want {
		if s[g] != gs {
			t.Errorf("summary[%s] = %+v, want %+v", g, s[g], gs)
		}
	}
	if got := s.Genres(); !slices.Equal(got, []string{"Action", "Drama"}) {
		t.Errorf("Genres() = %v", got)
	}
	checkSummary(t, tb, s)
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(NewTable()); len(s) != 0 {
		t.Errorf("Summarize(empty) = %v", s)
	}
}

func checkSummary(t *testing.T, tb Table, s Summary) {
	t.Helper()
	for _, g := range tb.Genres() {
		sum, first, last := 0, 0, 0
		for _, y := range tb.Years() {
			n := tb.Count(y, g)
			if n == 0 {
				continue
			}
			if sum == 0 {
				first = y
			}
			sum += n
			last = y
		}
		if want := (GenreSummary{Count: sum, StartYear: first, EndYear: last}); s[g] != want {
			t.Errorf("summary[%s] = %+v, want %+v", g, s[g], want)
		}
	}
	if len(s) != len(tb.Genres()) {
		t.Errorf("summary has %d genres, table has %d", len(s), len(tb.Genres()))
	}
}
