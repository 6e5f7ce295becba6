package batch

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"batchupload/internal/logging"
)

// Reporter receives user-facing progress. Upload callbacks are invoked
// from concurrent workers.
type Reporter interface {
	Configuration(sel Selection)
	NoSupportedFiles(extensions []string)
	NoFiles()
	DryRun(files []PlannedFile)
	UploadStarting(count, concurrency int)
	Uploading(file PlannedFile)
	Succeeded(file PlannedFile, trintID string)
	Failed(file PlannedFile, message string)
	Errored(file PlannedFile, err error)
	Complete(summary Summary)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Configuration(Selection)       {}
func (NopReporter) NoSupportedFiles([]string)     {}
func (NopReporter) NoFiles()                      {}
func (NopReporter) DryRun([]PlannedFile)          {}
func (NopReporter) UploadStarting(int, int)       {}
func (NopReporter) Uploading(PlannedFile)         {}
func (NopReporter) Succeeded(PlannedFile, string) {}
func (NopReporter) Failed(PlannedFile, string)    {}
func (NopReporter) Errored(PlannedFile, error)    {}
func (NopReporter) Complete(Summary)              {}

// ConsoleReporter prints progress lines. Failures go to the error writer.
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer

	ok    *color.Color
	bad   *color.Color
	title *color.Color
}

// NewConsoleReporter builds a reporter writing to out and errOut. Colors are
// used only when out is a terminal.
func NewConsoleReporter(out, errOut io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = out
	}
	r := &ConsoleReporter{
		out:    out,
		errOut: errOut,
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		title:  color.New(color.Bold),
	}
	r.SetColor(logging.IsTerminal(out))
	return r
}

// SetColor forces colored output on or off.
func (r *ConsoleReporter) SetColor(enabled bool) {
	for _, c := range []*color.Color{r.ok, r.bad, r.title} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (r *ConsoleReporter) Configuration(sel Selection) {
	var b strings.Builder
	b.WriteString(r.title.Sprint("Trint Batch Upload Tool") + "\n")
	b.WriteString("=========================\n\n")
	b.WriteString("Configuration:\n")
	fmt.Fprintf(&b, "  API Key ID: %s\n", sel.Credentials.APIKeyID)
	fmt.Fprintf(&b, "  API Key Secret: %s\n", logging.MaskSecret(sel.Credentials.APIKeySecret))
	if sel.Server != "" {
		fmt.Fprintf(&b, "  Server: %s\n", sel.Server)
	}
	if sel.Language != "" {
		fmt.Fprintf(&b, "  Language: %s\n", sel.Language)
	}
	fmt.Fprintf(&b, "  Concurrent uploads: %d\n", sel.Concurrency)
	fmt.Fprintf(&b, "  Debug mode: %t\n", sel.Debug)
	fmt.Fprintf(&b, "  Dry run mode: %t\n", sel.DryRun)
	if len(sel.Files) > 0 {
		fmt.Fprintf(&b, "  Files: %s\n", strings.Join(sel.Files, ", "))
	}
	if len(sel.Patterns) > 0 {
		fmt.Fprintf(&b, "  Patterns: %s\n", strings.Join(sel.Patterns, ", "))
	}
	if len(sel.PatternFiles) > 0 {
		fmt.Fprintf(&b, "  Pattern files: %s\n", strings.Join(sel.PatternFiles, ", "))
	}
	r.write(r.out, b.String())
}

func (r *ConsoleReporter) NoSupportedFiles(extensions []string) {
	r.write(r.out, fmt.Sprintf("\nNo supported media files found. Supported extensions: %s\n", strings.Join(extensions, ", ")))
}

func (r *ConsoleReporter) NoFiles() {
	r.write(r.out, "\nNo files to upload.\n")
}

func (r *ConsoleReporter) DryRun(files []PlannedFile) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nDry run: Would upload %d file(s):\n", len(files))
	for i, file := range files {
		fmt.Fprintf(&b, "  %d. [%s] %s\n", i+1, file.ID, file.Path)
	}
	b.WriteString("\nNo files were uploaded (dry run mode).\n")
	r.write(r.out, b.String())
}

func (r *ConsoleReporter) UploadStarting(count, concurrency int) {
	r.write(r.out, fmt.Sprintf("\nUploading %d file(s) with concurrency %d...\n", count, concurrency))
}

func (r *ConsoleReporter) Uploading(file PlannedFile) {
	r.write(r.out, fmt.Sprintf("  [%s] Uploading: %s\n", file.ID, file.Path))
}

func (r *ConsoleReporter) Succeeded(file PlannedFile, trintID string) {
	line := fmt.Sprintf("  [%s] %s \"%s\"", file.ID, r.ok.Sprint("✓ Success:"), file.Path)
	if trintID != "" {
		line += fmt.Sprintf(" => [TrintId=%s]", trintID)
	}
	r.write(r.out, line+"\n")
}

func (r *ConsoleReporter) Failed(file PlannedFile, message string) {
	r.write(r.errOut, fmt.Sprintf("  [%s] %s \"%s\", %s\n", file.ID, r.bad.Sprint("✗ Failed:"), file.Path, message))
}

func (r *ConsoleReporter) Errored(file PlannedFile, err error) {
	r.write(r.errOut, fmt.Sprintf("  [%s] %s \"%s\" %v\n", file.ID, r.bad.Sprint("✗ Error:"), file.Path, err))
}

func (r *ConsoleReporter) Complete(summary Summary) {
	line := fmt.Sprintf("Upload complete: %d succeeded, %d failed", summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		line = r.bad.Sprint(line)
	} else {
		line = r.ok.Sprint(line)
	}
	r.write(r.out, "\n"+line+"\n")
}

func (r *ConsoleReporter) write(w io.Writer, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(w, text)
}
