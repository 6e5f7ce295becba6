// Package notifications delivers batch events via ntfy.
//
// The default implementation publishes to the ntfy topic URL configured in
// config.toml and degrades to a no-op when none is set. Events cover batch
// completion, fatal run errors, and a manual test message.
package notifications
