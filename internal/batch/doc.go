// Package batch drives one upload run: it merges explicit files with files
// resolved from glob patterns and pattern files, keeps the supported media,
// and uploads them with a bounded number of concurrent workers.
//
// A failed upload only affects its own file. Configuration and resolution
// problems abort the run before any upload starts. Progress is surfaced
// through a Reporter so the CLI controls presentation.
package batch
