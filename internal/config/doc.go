// Package config loads, normalizes, and validates batch-upload configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TRINT_API_KEY_ID. The Config type centralizes the knobs the CLI needs so the
// upload server, credentials, concurrency and log routing are discovered in
// one pass.
//
// Command-line flags are applied by the CLI after Load returns and take
// precedence over everything resolved here.
package config
