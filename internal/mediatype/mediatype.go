package mediatype

import (
	"log/slog"
	"path/filepath"
	"strings"
)

type format struct {
	ext  string
	mime string
}

// formats is kept in the order the extensions are presented to users.
var formats = []format{
	// Audio
	{".mp3", "audio/mpeg"},
	{".wav", "audio/wav"},
	{".m4a", "audio/mp4"},
	{".aac", "audio/aac"},
	{".ogg", "audio/ogg"},
	{".flac", "audio/flac"},
	{".wma", "audio/x-ms-wma"},
	{".aiff", "audio/aiff"},
	{".opus", "audio/opus"},

	// Video
	{".mp4", "video/mp4"},
	{".mov", "video/quicktime"},
	{".avi", "video/x-msvideo"},
	{".wmv", "video/x-ms-wmv"},
	{".flv", "video/x-flv"},
	{".mkv", "video/x-matroska"},
	{".webm", "video/webm"},
	{".mpeg", "video/mpeg"},
	{".mpg", "video/mpeg"},
	{".3gp", "video/3gpp"},
	{".m4v", "video/x-m4v"},
}

var supported = func() map[string]string {
	m := make(map[string]string, len(formats))
	for _, f := range formats {
		m[f.ext] = f.mime
	}
	return m
}()

// Extension returns the lowercased extension of the last path segment,
// including the leading dot, or "" when there is none.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Classify returns the MIME type for path's extension. The second result is
// false when the extension is missing or not a supported media format.
func Classify(path string) (string, bool) {
	ext := Extension(path)
	if ext == "" {
		return "", false
	}
	mime, ok := supported[ext]
	return mime, ok
}

// IsSupported reports whether path has a supported media extension.
func IsSupported(path string) bool {
	_, ok := Classify(path)
	return ok
}

// FilterSupported returns the paths with supported extensions in their
// original order. Excluded paths are logged at debug level.
func FilterSupported(paths []string, logger *slog.Logger) []string {
	kept := make([]string, 0, len(paths))
	var dropped []string
	for _, path := range paths {
		if IsSupported(path) {
			kept = append(kept, path)
			continue
		}
		dropped = append(dropped, path)
	}

	if logger != nil && len(dropped) > 0 {
		logger.Debug("filtered out unsupported files", slog.Int("count", len(dropped)))
		for _, path := range dropped {
			ext := Extension(path)
			if ext == "" {
				ext = "none"
			}
			logger.Debug("unsupported file", slog.String("path", path), slog.String("extension", ext))
		}
	}
	if logger != nil {
		logger.Debug("supported files remain after filtering", slog.Int("count", len(kept)))
	}
	return kept
}

// SupportedExtensions lists every recognized extension, audio formats first.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, f.ext)
	}
	return exts
}
