// Package services defines shared utilities consumed by the batch runner and
// the upload service client.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and per-file upload IDs so log lines
//     from concurrent uploads can be told apart.
//   - Structured error markers plus the Wrap helper that separate fatal
//     failures (configuration, resolution) from per-file ones (transport,
//     rejection).
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the tool.
package services
