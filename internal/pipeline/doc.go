// Package pipeline runs the batch: read movies, aggregate them into the
// year/genre trend table, print the per-genre summary, write the trend CSV
// (plus the optional pivot and metrics textfile) and report run totals.
//
// The run is single-threaded and synchronous. Row-level problems are
// logged and skipped; only failures to read the input or to write the
// trend file end the run with an error.
package pipeline
