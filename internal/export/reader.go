package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/backmassage/genretrends/internal/trend"
)

// ReadFile parses a trend file written by WriteFile.
func ReadFile(path string) (trend.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trend file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the Year,Genre,Count form back into a table. Repeated
// (year, genre) records are summed; zero counts add nothing.
func Read(r io.Reader) (trend.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(head, Header) {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, head)
	}

	t := trend.NewTable()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)

		year, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad year %q", line, rec[0])
		}
		count, err := strconv.Atoi(rec[2])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("line %d: bad count %q", line, rec[2])
		}
		t.AddN(year, rec[1], count)
	}
}
