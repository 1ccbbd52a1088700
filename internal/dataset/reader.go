// Package dataset reads the TMDB movies export: a comma-delimited file whose
// header names at least the id, title, genres and release_date columns.
// Rows are decoded lazily; a row that cannot be decoded is reported and
// skipped instead of stopping the read.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/genretrends/internal/logging"
)

// Movie is one decoded input row. Genres is still the raw JSON array text.
type Movie struct {
	ID          string
	Title       string
	Genres      string
	ReleaseDate string

	Line int // 1-based line where the row starts.
}

// Columns are the header names a row is decoded from.
var Columns = []string{"id", "title", "genres", "release_date"}

// ErrMissingColumn marks rows that cannot be decoded because the header
// lacks one of [Columns].
var ErrMissingColumn = errors.New("missing column")

// ErrInvalidUTF8 marks rows with a field that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// RowError is a recoverable decode failure for a single row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// Reader decodes movies from CSV. It is not safe for concurrent use.
type Reader struct {
	csv    *csv.Reader
	closer io.Closer
	log    *logging.Logger

	headerDone bool
	eof        bool
	index      map[string]int
	missing    []string

	rows    int
	skipped int
	err     error
}

// Open opens path for reading. Failing to open the file is the only fatal
// error Open reports; the header is read on first use.
func Open(path string, log *logging.Logger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	r := NewReader(f, log)
	r.closer = f
	return r, nil
}

// NewReader wraps an open stream. The caller keeps ownership of src.
func NewReader(src io.Reader, log *logging.Logger) *Reader {
	cr := csv.NewReader(src)
	// Overviews and taglines in the export carry stray quotes.
	cr.LazyQuotes = true
	return &Reader{csv: cr, log: log}
}

// Close releases the underlying file when the Reader was built by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Missing reads the header if needed and returns the names from [Columns]
// it does not contain. An empty input has no header and nothing missing.
func (r *Reader) Missing() ([]string, error) {
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r.missing, nil
}

func (r *Reader) readHeader() error {
	if r.headerDone {
		return nil
	}
	r.headerDone = true

	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		r.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	r.index = make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := r.index[name]; !dup {
			r.index[name] = i
		}
	}
	for _, c := range Columns {
		if _, ok := r.index[c]; !ok {
			r.missing = append(r.missing, c)
		}
	}
	return nil
}

// Next returns the next movie. At the end of input it returns io.EOF. A row
// that cannot be decoded yields a *RowError and the Reader stays usable; any
// other error is an I/O failure.
func (r *Reader) Next() (Movie, error) {
	if err := r.readHeader(); err != nil {
		return Movie{}, err
	}
	if r.eof {
		return Movie{}, io.EOF
	}

	rec, err := r.csv.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Movie{}, &RowError{Line: pe.StartLine, Err: pe.Err}
		}
		if errors.Is(err, io.EOF) {
			r.eof = true
		}
		return Movie{}, err
	}

	line, _ := r.csv.FieldPos(0)
	if len(r.missing) > 0 {
		return Movie{}, &RowError{Line: line, Err: fmt.Errorf("%w %q", ErrMissingColumn, r.missing[0])}
	}
	for i, field := range rec {
		if !utf8.ValidString(field) {
			return Movie{}, &RowError{Line: line, Err: fmt.Errorf("field %d: %w", i+1, ErrInvalidUTF8)}
		}
	}
	return Movie{
		ID:          rec[r.index["id"]],
		Title:       rec[r.index["title"]],
		Genres:      rec[r.index["genres"]],
		ReleaseDate: rec[r.index["release_date"]],
		Line:        line,
	}, nil
}

// Movies is the lazy sequence of decoded movies. Rows failing to decode are
// logged and skipped. A fatal read error ends the sequence; check [Reader.Err]
// afterwards.
func (r *Reader) Movies() iter.Seq[Movie] {
	return func(yield func(Movie) bool) {
		for {
			m, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var rowErr *RowError
				if errors.As(err, &rowErr) {
					r.skipped++
					r.log.Warn("Skipping malformed row: %v", rowErr)
					continue
				}
				r.err = err
				return
			}
			r.rows++
			if !yield(m) {
				return
			}
		}
	}
}

// Err returns the fatal error that ended [Reader.Movies], if any.
func (r *Reader) Err() error { return r.err }

// Rows returns how many movies were decoded so far.
func (r *Reader) Rows() int { return r.rows }

// Skipped returns how many malformed rows were skipped so far.
func (r *Reader) Skipped() int { return r.skipped }
