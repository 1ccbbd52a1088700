// Package config holds runtime configuration: defaults, layered loading
// (YAML file, environment), CLI flag parsing, and validation. With no file,
// no environment and no flags the defaults reproduce the fixed behavior:
// read tmdb_5000_movies.csv, write genre_popularity_over_time.csv.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Default input and output paths, relative to the working directory.
const (
	DefaultInputPath  = "tmdb_5000_movies.csv"
	DefaultOutputPath = "genre_popularity_over_time.csv"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// LogFormat selects how diagnostics are rendered on stderr.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console" // Human-readable lines (default).
	LogFormatJSON    LogFormat = "json"    // One JSON object per line.
)

// LogConfig groups the diagnostic stream settings.
type LogConfig struct {
	File   string    `koanf:"file"`                                                  // Optional append-only log file.
	Level  string    `koanf:"level" validate:"oneof=trace debug info warn error"`  // Default: "info".
	Format LogFormat `koanf:"format" validate:"oneof=console json"`                // Default: "console".
	Color  ColorMode `koanf:"color" validate:"oneof=auto always never"`            // Default: "auto".
}

// Config holds all runtime settings. It is produced by [Load] (defaults,
// file, environment), refined by [ParseFlags] and checked by [Config.Validate]
// before being passed by pointer to the packages that need it.
type Config struct {
	// Paths.
	InputPath   string `koanf:"input" validate:"required"`
	OutputPath  string `koanf:"output" validate:"required"`
	PivotPath   string `koanf:"pivot_path"`   // Optional Year x Genre matrix export.
	MetricsFile string `koanf:"metrics_file"` // Optional Prometheus textfile.

	Log LogConfig `koanf:"log"`

	// Flag-only switches.
	Verbose   bool `koanf:"-"`
	CheckOnly bool `koanf:"-"`
}

// DefaultConfig returns a Config with every default applied. Used as the
// base layer by [Load].
func DefaultConfig() Config {
	return Config{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
			Color:  ColorAuto,
		},
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks required paths and enum fields, then makes sure no two
// configured paths point at the same file.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, translateError(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return c.ValidatePaths()
}

// translateError turns a validator field error into a message naming the
// setting the user actually typed.
func translateError(fe validator.FieldError) string {
	name := settingName(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", name)
	case "oneof":
		return fmt.Sprintf("invalid %s %q (use %s)", name, fe.Value(), strings.ReplaceAll(fe.Param(), " ", " | "))
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}

var settingNames = map[string]string{
	"Config.InputPath":   "input",
	"Config.OutputPath":  "output",
	"Config.Log.Level":   "log level",
	"Config.Log.Format":  "log format",
	"Config.Log.Color":   "color mode",
	"Config.PivotPath":   "pivot path",
	"Config.MetricsFile": "metrics file",
}

func settingName(namespace string) string {
	if n, ok := settingNames[namespace]; ok {
		return n
	}
	return namespace
}

// ValidatePaths rejects configurations where an output would overwrite the
// input or another output.
func (c *Config) ValidatePaths() error {
	in := filepath.Clean(c.InputPath)
	outputs := []struct {
		name string
		path string
	}{
		{"output", c.OutputPath},
		{"pivot path", c.PivotPath},
		{"metrics file", c.MetricsFile},
	}
	seen := map[string]string{}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		p := filepath.Clean(o.path)
		if p == in {
			return fmt.Errorf("%s must not be the input file (%s)", o.name, c.InputPath)
		}
		if prev, ok := seen[p]; ok {
			return fmt.Errorf("%s and %s point at the same file (%s)", prev, o.name, o.path)
		}
		seen[p] = o.name
	}
	return nil
}
