package uploadid

import (
	"regexp"
	"testing"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{6}$`)

func TestDeriveIsDeterministic(t *testing.T) {
	for _, path := range []string{"/media/a.mp3", "relative/b.wav", "", "ünïcødé.mkv"} {
		first := Derive(path)
		second := Derive(path)
		if first != second {
			t.Fatalf("Derive(%q) not stable: %q vs %q", path, first, second)
		}
		if !hexID.MatchString(first) {
			t.Fatalf("Derive(%q) = %q, want 6 lowercase hex chars", path, first)
		}
	}
}

func TestDeriveMatchesSHA1Prefix(t *testing.T) {
	// sha1("abc") = a9993e364706816aba3e25717850c26c9cd0d89d
	if got := Derive("abc"); got != "a9993e" {
		t.Fatalf("Derive(abc) = %q, want a9993e", got)
	}
}
