package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/genretrends/internal/config"
	"github.com/backmassage/genretrends/internal/dataset"
	"github.com/backmassage/genretrends/internal/display"
	"github.com/backmassage/genretrends/internal/export"
	"github.com/backmassage/genretrends/internal/logging"
	"github.com/backmassage/genretrends/internal/metrics"
	"github.com/backmassage/genretrends/internal/trend"
)

// Run is the top-level batch entry point. The summary table and the final
// "written to" line go to out; diagnostics go to log. A non-nil error means the input could not be read
// or the trend file could not be written.
func Run(cfg *config.Config, log *logging.Logger, out io.Writer) (RunStats, error) {
	start := time.Now()
	var stats RunStats

	log.Debug("Reading %s", cfg.InputPath)
	r, err := dataset.Open(cfg.InputPath, log)
	if err != nil {
		return stats, err
	}
	defer r.Close()

	table, agg := trend.Aggregate(r.Movies(), log)
	stats.Rows = r.Rows()
	stats.Skipped = r.Skipped()
	stats.Undated = agg.Undated
	stats.GenreErrors = agg.GenreErrors
	stats.Pairs = agg.Pairs
	stats.Cells = table.Len()
	if err := r.Err(); err != nil {
		return stats, fmt.Errorf("read %s: %w", cfg.InputPath, err)
	}
	if missing, _ := r.Missing(); len(missing) > 0 {
		log.Warn("Input header lacks %v; every row was skipped", missing)
	}

	summary := trend.Summarize(table)
	stats.Genres = len(summary)
	if err := display.PrintSummary(out, summary); err != nil {
		log.Warn("Could not print summary: %v", err)
	}

	if err := export.WriteFile(cfg.OutputPath, table); err != nil {
		return stats, err
	}
	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}
	fmt.Fprintf(out, "Genre popularity trends written to: %s\n", cfg.OutputPath)

	if cfg.PivotPath != "" {
		if err := export.WritePivotFile(cfg.PivotPath, table); err != nil {
			return stats, err
		}
		log.Info("Pivot table written to: %s", cfg.PivotPath)
	}

	stats.Duration = time.Since(start)
	logSummary(log, &stats)

	if cfg.MetricsFile != "" {
		writeMetrics(cfg.MetricsFile, log, &stats)
	}
	return stats, nil
}

// writeMetrics records the run and writes the textfile. Failure is logged
// but does not fail the run.
func writeMetrics(path string, log *logging.Logger, stats *RunStats) {
	rec := metrics.NewRecorder()
	rec.RecordRun(stats.metrics(time.Now()))
	if err := rec.WriteTextfile(path); err != nil {
		log.Warn("Metrics not written: %v", err)
		return
	}
	log.Debug("Metrics written to: %s", path)
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %s %s read, %s dropped (%d malformed, %d undated), %d genre decode %s",
		display.FormatCount(stats.Rows+stats.Skipped), display.Plural(stats.Rows+stats.Skipped, "row"),
		display.FormatCount(stats.Dropped()), stats.Skipped, stats.Undated,
		stats.GenreErrors, display.Plural(stats.GenreErrors, "error"))
	log.Info("  %s genre %s across %s year/genre %s from %s %s",
		display.FormatCount(stats.Genres), display.Plural(stats.Genres, "name"),
		display.FormatCount(stats.Cells), display.Plural(stats.Cells, "cell"),
		display.FormatCount(stats.Pairs), display.Plural(stats.Pairs, "pair"))
	log.Info("  Output %s in %s", display.FormatBytes(stats.OutputBytes), stats.Duration.Round(time.Millisecond))
}
