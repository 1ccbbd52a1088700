package pipeline

import (
	"time"

	"github.com/backmassage/genretrends/internal/metrics"
)

// RunStats tracks what a run read, dropped and produced.
type RunStats struct {
	Rows        int // Data rows decoded.
	Skipped     int // Malformed rows skipped.
	Undated     int
	GenreErrors int
	Pairs       int
	Cells       int
	Genres      int
	OutputBytes int64
	Duration    time.Duration
}

// Dropped returns the rows that contributed nothing to the table because
// they were malformed or had no release year.
func (s *RunStats) Dropped() int {
	return s.Skipped + s.Undated
}

// metrics converts the stats for the textfile recorder.
func (s *RunStats) metrics(finished time.Time) metrics.RunMetrics {
	return metrics.RunMetrics{
		RowsRead:    s.Rows + s.Skipped,
		Malformed:   s.Skipped,
		Undated:     s.Undated,
		GenreErrors: s.GenreErrors,
		GenrePairs:  s.Pairs,
		TrendCells:  s.Cells,
		Genres:      s.Genres,
		Duration:    s.Duration,
		FinishedAt:  finished,
	}
}
