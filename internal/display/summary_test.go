package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/backmassage/genretrends/internal/trend"
)

func TestPrintSummary(t *testing.T) {
	s := trend.Summary{
		"Drama":  {Count: 12, StartYear: 1931, EndYear: 2017},
		"Action": {Count: 1, StartYear: 2000, EndYear: 2000},
	}
	var buf bytes.Buffer
	if err := PrintSummary(&buf, s); err != nil {
		t.Fatal(err)
	}

	want := "\n" +
		"Summary Statistics:\n" +
		"Genre                Count      Start Year End Year  \n" +
		strings.Repeat("-", 50) + "\n" +
		"Action               1          2000       2000      \n" +
		"Drama                12         1931       2017      \n"
	if got := buf.String(); got != want {
		t.Errorf("PrintSummary output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestPrintSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintSummary(&buf, trend.Summary{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want blank+title+header+rule: %q", len(lines), buf.String())
	}
	if lines[3] != strings.Repeat("-", 50) {
		t.Errorf("rule = %q", lines[3])
	}
}

func TestPrintSummary_LongGenreNotTruncated(t *testing.T) {
	long := "Science Fiction Fantasy Epic"
	var buf bytes.Buffer
	if err := PrintSummary(&buf, trend.Summary{long: {Count: 3, StartYear: 1977, EndYear: 1983}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), long+" 3") {
		t.Errorf("long genre should be printed in full: %q", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrintSummary_WriteError(t *testing.T) {
	if err := PrintSummary(failWriter{}, trend.Summary{}); err == nil {
		t.Error("expected write error")
	}
}
