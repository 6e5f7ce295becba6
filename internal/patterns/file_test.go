package patterns_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"batchupload/internal/patterns"
)

func writePatternFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pattern file: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "comments blank lines and inline notes",
			content: "# c\n\n  ~/a/*.mp3  # note\n./b/**/*.wav\n",
			want:    []string{"~/a/*.mp3", "./b/**/*.wav"},
		},
		{
			name:    "simple lines",
			content: "~/Videos/*.mp3\n~/Music/*.wav\n./audio/**/*.flac",
			want:    []string{"~/Videos/*.mp3", "~/Music/*.wav", "./audio/**/*.flac"},
		},
		{
			name:    "indented comment and trailing whitespace",
			content: "# Pattern file\n~/Videos/*.mp3\n\n  ~/Music/**/*.wav  # Recursive\n\n  # indented comment\n\n./recordings/**/*.flac   \n",
			want:    []string{"~/Videos/*.mp3", "~/Music/**/*.wav", "./recordings/**/*.flac"},
		},
		{
			name:    "windows line endings",
			content: "a/*.mp3\r\nb/*.wav\r\n",
			want:    []string{"a/*.mp3", "b/*.wav"},
		},
		{
			name:    "only comments",
			content: "# Comment 1\n# Comment 2\n\n# Comment 3\n\n",
			want:    nil,
		},
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := patterns.ParseFile(writePatternFile(t, tc.content))
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Fatalf("ParseFile = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := patterns.ParseFile(filepath.Join(t.TempDir(), "non-existent.txt"))
	if err == nil {
		t.Fatal("expected error for missing pattern file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
