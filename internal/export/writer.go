// Package export serializes a trend table as CSV: the long Year,Genre,Count
// form the pipeline produces, a reader for that form, and the wide
// year-by-genre pivot.
package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/backmassage/genretrends/internal/trend"
)

// Header is the first record of every trend file.
var Header = []string{"Year", "Genre", "Count"}

// ErrBadHeader is returned by Read when the first record is not Header.
var ErrBadHeader = errors.New("unexpected header")

// WriteFile creates (or truncates) path and writes t to it. On error a
// partially written file may remain.
func WriteFile(path string, t trend.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Write emits the header and one record per cell, ordered by year then genre.
func Write(w io.Writer, t trend.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range t.Cells() {
		rec := []string{strconv.Itoa(c.Year), c.Genre, strconv.Itoa(c.Count)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
