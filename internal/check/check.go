// Package check provides the --check preflight: it verifies that the input
// file opens and carries the required columns, samples its first rows, and
// confirms every configured output location is writable, without producing
// any output.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/genretrends/internal/config"
	"github.com/backmassage/genretrends/internal/dataset"
	"github.com/backmassage/genretrends/internal/display"
	"github.com/backmassage/genretrends/internal/extract"
	"github.com/backmassage/genretrends/internal/logging"
)

// Sentinel errors joined into the result of RunCheck.
var (
	ErrInputUnreadable   = errors.New("input file unreadable")
	ErrMissingColumns    = errors.New("input header lacks required columns")
	ErrOutputNotWritable = errors.New("output location not writable")
)

// SampleRows is how many data rows RunCheck decodes from the input.
const SampleRows = 100

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains testable with a recording logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// RunCheck runs every check, logging each result. It returns nil when the
// run would be able to start, else all blocking problems joined.
func RunCheck(cfg *config.Config, log Logger) error {
	log.Info("=== Preflight Check ===")

	var errs []error
	if err := checkInput(cfg.InputPath, log); err != nil {
		errs = append(errs, err)
	}
	for _, t := range outputTargets(cfg) {
		if err := checkWritable(t.label, t.path, log); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		log.Success("All checks passed")
		return nil
	}
	log.Error("%d blocking %s found", len(errs), display.Plural(len(errs), "problem"))
	return errors.Join(errs...)
}

// checkInput opens the input, validates its header and samples rows.
func checkInput(path string, log Logger) error {
	r, err := dataset.Open(path, logging.Nop())
	if err != nil {
		log.Error("Input %s: %v", path, err)
		return fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	defer r.Close()

	missing, err := r.Missing()
	if err != nil {
		log.Error("Input %s: %v", path, err)
		return fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	if len(missing) > 0 {
		log.Error("Input %s is missing columns: %s", path, strings.Join(missing, ", "))
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	log.Success("Input %s: header has %s", path, strings.Join(dataset.Columns, ", "))

	s, err := sample(r, SampleRows)
	if err != nil {
		log.Error("Input %s: %v", path, err)
		return fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	log.Info("Sampled %d rows: %d dated, %d genre decode errors, %d malformed",
		s.rows, s.dated, s.genreErrors, s.malformed)
	if s.rows > 0 && s.dated == 0 {
		log.Warn("No sampled row has a parseable release year")
	}
	return nil
}

type sampleStats struct {
	rows        int
	dated       int
	genreErrors int
	malformed   int
}

// sample decodes up to n rows the way the pipeline would.
func sample(r *dataset.Reader, n int) (sampleStats, error) {
	var s sampleStats
	for s.rows+s.malformed < n {
		m, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *dataset.RowError
		if errors.As(err, &rowErr) {
			s.malformed++
			continue
		}
		if err != nil {
			return s, err
		}
		s.rows++
		if _, ok := extract.ReleaseYear(m.ReleaseDate); !ok {
			continue
		}
		s.dated++
		if _, err := extract.Genres(m.Genres); err != nil {
			s.genreErrors++
		}
	}
	return s, nil
}

type target struct {
	label string
	path  string
}

// outputTargets lists the configured files the run would create.
func outputTargets(cfg *config.Config) []target {
	all := []target{
		{"Output", cfg.OutputPath},
		{"Pivot", cfg.PivotPath},
		{"Metrics", cfg.MetricsFile},
		{"Log", cfg.Log.File},
	}
	out := all[:0]
	for _, t := range all {
		if t.path != "" {
			out = append(out, t)
		}
	}
	return out
}

// checkWritable creates and removes a temporary file next to path.
func checkWritable(label, path string, log Logger) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".genretrends-check-*")
	if err != nil {
		log.Error("%s %s: directory %s not writable: %v", label, path, dir, err)
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	log.Success("%s %s: writable", label, path)
	return nil
}
