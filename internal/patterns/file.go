package patterns

import (
	"fmt"
	"os"
	"strings"
)

// ParseFile reads a pattern file and returns its patterns in line order.
// Everything from the first `#` on a line is discarded, the remainder is
// trimmed, and empty results are skipped. A missing or unreadable file is an
// error.
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse applies the pattern file rules to already-loaded content.
func Parse(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
