// Package extract pulls typed values out of raw movie fields: the release
// year from a date string and the genre names from the embedded JSON array.
package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrNotArray is returned when the genres field decodes to JSON null.
var ErrNotArray = errors.New("genres is not a JSON array")

// ReleaseYear returns the leading segment of date, up to the first '-', as
// a year. Month and day are ignored and not validated. It reports false for
// an empty date or a leading segment that is not a 32-bit integer.
func ReleaseYear(date string) (int, bool) {
	if date == "" {
		return 0, false
	}
	head, _, _ := strings.Cut(date, "-")
	y, err := strconv.ParseInt(head, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(y), true
}

// Genres decodes raw as a JSON array and returns the "name" of every element
// that is an object with a string name, in order. Elements without a usable
// name are dropped. A decode failure returns no names and the error.
func Genres(raw string) ([]string, error) {
	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	if entries == nil {
		return nil, ErrNotArray
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
