package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/genretrends/internal/trend"
)

const (
	summaryTitle = "Summary Statistics:"
	ruleWidth    = 50
	headerFormat = "%-20s %-10s %-10s %-10s\n"
	rowFormat    = "%-20s %-10d %-10d %-10d\n"
)

// PrintSummary writes the summary table to w: a blank line, the title, a
// header row, a dash rule, then one row per genre sorted by name. Genre
// names longer than the column are printed in full. The output is plain
// text whatever the color mode.
func PrintSummary(w io.Writer, s trend.Summary) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(summaryTitle + "\n")
	fmt.Fprintf(&b, headerFormat, "Genre", "Count", "Start Year", "End Year")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, g := range s.Genres() {
		gs := s[g]
		fmt.Fprintf(&b, rowFormat, g, gs.Count, gs.StartYear, gs.EndYear)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
