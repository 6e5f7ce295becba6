package batch

import (
	"time"

	"batchupload/internal/services/trint"
)

// Selection is the input of one run. The runner never mutates it.
type Selection struct {
	Files        []string
	Patterns     []string
	PatternFiles []string
	Concurrency  int
	Language     string
	Server       string
	Debug        bool
	DryRun       bool
	Credentials  trint.Credentials
}

// PlannedFile is a file scheduled for upload with its short display ID.
type PlannedFile struct {
	Path string
	ID   string
}

// Summary reports the result of one run.
type Summary struct {
	RunID      string
	Candidates int
	Supported  int
	Succeeded  int
	Failed     int
	DryRun     bool
	// Planned lists the files a dry run would have uploaded.
	Planned  []PlannedFile
	Duration time.Duration
}

// NoSupportedFiles reports whether files were found but none had a
// supported media extension.
func (s Summary) NoSupportedFiles() bool {
	return s.Candidates > 0 && s.Supported == 0
}

// Attempted is the number of uploads that were dispatched.
func (s Summary) Attempted() int {
	return s.Succeeded + s.Failed
}
