// Command genretrends reads a TMDB movies export, counts how many movies of
// each genre were released per year, prints a per-genre summary and writes
// the Year,Genre,Count trend table as CSV.
//
// With no arguments it reads tmdb_5000_movies.csv and writes
// genre_popularity_over_time.csv in the working directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/genretrends/internal/check"
	"github.com/backmassage/genretrends/internal/config"
	"github.com/backmassage/genretrends/internal/logging"
	"github.com/backmassage/genretrends/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "genretrends: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, args, version); err != nil {
		if errors.Is(err, config.ErrExitRequested) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "genretrends: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'genretrends --help' for usage.")
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "genretrends: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genretrends: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All diagnostics go through log from here.
	if cfg.CheckOnly {
		if err := check.RunCheck(&cfg, log); err != nil {
			return 1
		}
		return 0
	}

	log.Debug("=== genretrends v%s (%s) ===", version, commit)
	log.Debug("In:  %s", cfg.InputPath)
	log.Debug("Out: %s", cfg.OutputPath)

	// Phase 3: Run the batch. The summary table goes to stdout.
	if _, err := pipeline.Run(&cfg, log, os.Stdout); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
