package config

// This file implements CLI flag parsing and help text.
// Flags are the last configuration layer: their defaults are whatever Load
// produced, so an unset flag never clobbers a file or environment value.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrExitRequested is returned by ParseFlags after --help or --version has
// been printed. Callers should exit successfully.
var ErrExitRequested = errors.New("exit requested")

// ParseFlags parses args (without the program name) into cfg. It returns
// ErrExitRequested for --help/--version and a non-nil error for unknown
// flags or stray positional arguments.
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("genretrends", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var n switchFlags

	definePathFlags(fs, cfg)
	defineLogFlags(fs, cfg, &n)
	defineUtilityFlags(fs, cfg, &n)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stderr, version)
			return ErrExitRequested
		}
		return err
	}

	if n.showHelp {
		printUsage(os.Stderr, version)
		return ErrExitRequested
	}
	if n.showVersion {
		fmt.Fprintln(os.Stdout, "genretrends v"+version)
		return ErrExitRequested
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (paths are set with --input and --output)", fs.Arg(0))
	}

	applySwitchFlags(cfg, &n)
	return nil
}

// switchFlags holds booleans applied after Parse: color overrides and the
// flags that print and exit.
type switchFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers -i/--input, -o/--output, --pivot, --metrics-file.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Input movies CSV")
	fs.StringVar(&cfg.InputPath, "i", cfg.InputPath, "Same as --input")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output trends CSV")
	fs.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "Same as --output")
	fs.StringVar(&cfg.PivotPath, "pivot", cfg.PivotPath, "Also write a Year x Genre matrix CSV")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write run metrics in Prometheus text format")
}

// defineLogFlags registers --log, --log-level, --log-format, --color, --no-color, -v.
func defineLogFlags(fs *flag.FlagSet, cfg *Config, n *switchFlags) {
	fs.StringVar(&cfg.Log.File, "log", cfg.Log.File, "Append logs to file")
	fs.StringVar(&cfg.Log.File, "l", cfg.Log.File, "Same as --log")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Minimum level: trace | debug | info | warn | error")
	fs.Var(&logFormatValue{&cfg.Log.Format}, "log-format", "Diagnostic format: console | json")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (debug level)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *switchFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Check input, header and output locations, then exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applySwitchFlags copies color and verbosity switches into cfg.
func applySwitchFlags(cfg *Config, n *switchFlags) {
	if n.noColor {
		cfg.Log.Color = ColorNever
	} else if n.forceColor {
		cfg.Log.Color = ColorAlways
	}
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "genretrends v" + version + " - genre popularity over time"},
		{"", ""},
		{"  genretrends [OPTIONS]", ""},
		{"", ""},
		{"Paths", ""},
		{"  -i, --input <path>", "Movies CSV (default: " + DefaultInputPath + ")"},
		{"  -o, --output <path>", "Trends CSV (default: " + DefaultOutputPath + ")"},
		{"  --pivot <path>", "Also write a Year x Genre matrix"},
		{"  --metrics-file <path>", "Write run metrics (Prometheus text format)"},
		{"", ""},
		{"Logging", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --log-level <level>", "trace | debug | info | warn | error (default: info)"},
		{"  --log-format <fmt>", "console | json (default: console)"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "Check input, header and output locations"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Settings can also come from genretrends.yaml (or $" + ConfigPathEnvVar + ")"},
		{"", "and GENRETRENDS_* environment variables; flags win."},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(w)
		case l.desc == "":
			fmt.Fprintln(w, l.flags)
		case l.flags == "":
			fmt.Fprintln(w, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}

// logFormatValue adapts LogFormat to flag.Var.
type logFormatValue struct{ p *LogFormat }

func (v *logFormatValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *logFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "console":
		*v.p = LogFormatConsole
	case "json":
		*v.p = LogFormatJSON
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", s)
	}
	return nil
}
