// Package term decides whether diagnostics on stderr are colored.
//
// Only the zerolog console writer emits ANSI sequences; the summary table
// on stdout is always plain text.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/genretrends/internal/config"
)

// StderrColor resolves the color mode against stderr, where diagnostics go.
func StderrColor(mode config.ColorMode) bool {
	return resolve(mode, os.Stderr)
}

// resolve honors the explicit modes, then falls back to TTY detection,
// NO_COLOR (https://no-color.org) and TERM=dumb.
func resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
