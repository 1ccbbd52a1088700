package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/backmassage/genretrends/internal/trend"
)

// WritePivotFile creates path and writes the pivot of t to it.
func WritePivotFile(path string, t trend.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pivot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close pivot file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WritePivot(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// WritePivot writes t as a Year x Genre matrix: header "Year" followed by
// every genre sorted by name, then one row per year ascending with absent
// cells written as 0.
func WritePivot(w io.Writer, t trend.Table) error {
	genres := t.Genres()
	cw := csv.NewWriter(w)

	rec := append([]string{"Year"}, genres...)
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("write pivot header: %w", err)
	}
	for _, year := range t.Years() {
		rec = rec[:0]
		rec = append(rec, strconv.Itoa(year))
		for _, g := range genres {
			rec = append(rec, strconv.Itoa(t.Count(year, g)))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write pivot row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
