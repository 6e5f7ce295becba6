// Package mediatype classifies files by extension against the fixed set of
// audio and video formats the Trint upload service accepts.
//
// The table is built once at package initialization and never mutated, so
// lookups are safe from any goroutine.
package mediatype
