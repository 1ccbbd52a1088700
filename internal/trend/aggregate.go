package trend

import (
	"iter"

	"github.com/backmassage/genretrends/internal/dataset"
	"github.com/backmassage/genretrends/internal/extract"
	"github.com/backmassage/genretrends/internal/logging"
)

// AggregateStats describes what Aggregate saw.
type AggregateStats struct {
	Movies      int // Movies consumed.
	Undated     int // Dropped for lack of a parseable release year.
	GenreErrors int // Dated movies whose genres field failed to decode.
	Pairs       int // (movie, genre) pairs counted into the table.
}

// Aggregate counts every genre of every dated movie into a new Table.
// Undated movies are dropped without a diagnostic, and their genres are
// never decoded. A genres field that fails to decode is logged and that
// movie contributes nothing.
func Aggregate(movies iter.Seq[dataset.Movie], log *logging.Logger) (Table, AggregateStats) {
	t := NewTable()
	var st AggregateStats

	for m := range movies {
		st.Movies++

		year, ok := extract.ReleaseYear(m.ReleaseDate)
		if !ok {
			st.Undated++
			continue
		}

		genres, err := extract.Genres(m.Genres)
		if err != nil {
			st.GenreErrors++
			log.Warn("Skipping invalid JSON in genres (line %d, id %s): %v", m.Line, m.ID, err)
			continue
		}
		for _, g := range genres {
			t.Add(year, g)
			st.Pairs++
		}
	}
	return t, st
}
