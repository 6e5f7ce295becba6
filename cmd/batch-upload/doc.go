// Package main hosts the batch-upload CLI entrypoint and command graph.
//
// The root command uploads media files to Trint: it resolves explicit files,
// glob patterns and pattern files, applies flag-over-config precedence, and
// hands the selection to the batch runner. Subcommands cover configuration
// scaffolding, preflight checks, the supported language list, and a
// notification test.
//
// Keep this package lean: new behavior belongs in the internal packages and
// is surfaced here through flags or dedicated commands.
package main
