// Package metrics records one pipeline run as Prometheus metrics and writes
// them in the node_exporter textfile format, for scraping by a textfile
// collector after scheduled runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "genretrends"

// Skip reasons used as the "reason" label of rowsSkipped.
const (
	ReasonMalformed = "malformed"
	ReasonUndated   = "undated"
)

// RunMetrics is what a finished run reports.
type RunMetrics struct {
	RowsRead    int
	Malformed   int
	Undated     int
	GenreErrors int
	GenrePairs  int
	TrendCells  int
	Genres      int
	Duration    time.Duration
	FinishedAt  time.Time
}

// Recorder owns a private registry so a run's textfile contains only its
// own series.
type Recorder struct {
	reg *prometheus.Registry

	rowsRead    prometheus.Counter
	rowsSkipped *prometheus.CounterVec
	genreErrors prometheus.Counter
	genrePairs  prometheus.Counter
	trendCells  prometheus.Gauge
	genres      prometheus.Gauge
	runDuration prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder registers the run metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		rowsRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Data rows read from the input file",
		}),
		rowsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Rows that contributed nothing, by reason",
		}, []string{"reason"}),
		genreErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genre_decode_errors_total",
			Help:      "Dated rows whose genres field was not a JSON array",
		}),
		genrePairs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genre_pairs_total",
			Help:      "Movie and genre pairs counted into the trend table",
		}),
		trendCells: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trend_cells",
			Help:      "Non-zero year and genre cells in the trend table",
		}),
		genres: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "genres",
			Help:      "Distinct genres in the trend table",
		}),
		runDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run in seconds",
		}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished",
		}),
	}
}

// RecordRun adds one run's figures to the metrics.
func (r *Recorder) RecordRun(m RunMetrics) {
	r.rowsRead.Add(float64(m.RowsRead))
	r.rowsSkipped.WithLabelValues(ReasonMalformed).Add(float64(m.Malformed))
	r.rowsSkipped.WithLabelValues(ReasonUndated).Add(float64(m.Undated))
	r.genreErrors.Add(float64(m.GenreErrors))
	r.genrePairs.Add(float64(m.GenrePairs))
	r.trendCells.Set(float64(m.TrendCells))
	r.genres.Set(float64(m.Genres))
	r.runDuration.Set(m.Duration.Seconds())
	if !m.FinishedAt.IsZero() {
		r.lastSuccess.Set(float64(m.FinishedAt.Unix()))
	}
}

// WriteTextfile writes every registered series to path. The file is
// written to a temporary sibling and renamed into place.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
