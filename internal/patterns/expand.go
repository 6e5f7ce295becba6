package patterns

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandHome replaces a leading `~` with the current user's home directory.
// Patterns without the prefix are returned unchanged.
func ExpandHome(pattern string) (string, error) {
	if !strings.HasPrefix(pattern, "~") {
		return pattern, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, pattern[1:]), nil
}

// Expand resolves each pattern against the filesystem and returns the matching
// regular files as absolute paths. Results keep pattern order; matches within
// a pattern follow directory listing order, which is lexical. A pattern that
// matches nothing contributes nothing. Invalid pattern syntax fails the whole
// expansion.
func Expand(patterns []string, logger *slog.Logger) ([]string, error) {
	var all []string
	for _, pattern := range patterns {
		matches, err := expandOne(pattern, logger)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	if logger != nil {
		logger.Debug("total files found from patterns", slog.Int("count", len(all)))
	}
	return all, nil
}

func expandOne(pattern string, logger *slog.Logger) ([]string, error) {
	expanded, err := ExpandHome(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}
	if logger != nil {
		logger.Debug("processing pattern", slog.String("pattern", pattern))
		if expanded != pattern {
			logger.Debug("pattern expanded", slog.String("pattern", pattern), slog.String("expanded", expanded))
		}
	}

	if !doublestar.ValidatePathPattern(expanded) {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.FilepathGlob(expanded, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}

	dotted := dotSegments(expanded)
	results := make([]string, 0, len(matches))
	for _, match := range matches {
		if hidden(match, dotted) {
			continue
		}
		abs, err := filepath.Abs(match)
		if err != nil {
			return nil, fmt.Errorf("resolve absolute path for %q: %w", match, err)
		}
		results = append(results, abs)
	}

	if logger != nil {
		logger.Debug("pattern matched files", slog.String("pattern", pattern), slog.Int("count", len(results)))
	}
	return results, nil
}

// dotSegments returns the pattern segments that start with a dot. Only those
// segments are allowed to match hidden names.
func dotSegments(pattern string) []string {
	var out []string
	for _, seg := range strings.Split(filepath.ToSlash(pattern), "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			out = append(out, seg)
		}
	}
	return out
}

func hidden(match string, dotted []string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(match), "/") {
		if !strings.HasPrefix(seg, ".") || seg == "." || seg == ".." {
			continue
		}
		if !matchesAny(dotted, seg) {
			return true
		}
	}
	return false
}

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
