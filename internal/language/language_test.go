package language

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  ", ""},
		{"en", "en"},
		{"EN", "en"},
		{"en-gb", "en-GB"},
		{"en_GB", "en-GB"},
		{" fr ", "fr"},
		{"cmn", "cmn"},
		{"yue", "yue"},
		// well-formed but not in the list still normalizes
		{"zu", "zu"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	for _, input := range []string{"english-please-now!", "toolonglanguagecode", "123456789"} {
		if _, err := Normalize(input); err == nil {
			t.Errorf("Normalize(%q) expected error", input)
		}
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"en", true},
		{"en-gb", true},
		{"EN-GB", true},
		{"cmn", true},
		{"vi", true},
		{"zu", false},
		{"", false},
		{"!!", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.input); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en-GB", "English (British spelling)"},
		{"en", "English (American spelling)"},
		{"fr", "French"},
		{"zu", "zu"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	list := Supported()
	if len(list) == 0 {
		t.Fatal("expected supported languages")
	}
	if list[0].Code != "en-GB" {
		t.Fatalf("first entry = %q, want en-GB", list[0].Code)
	}
	list[0].Code = "xx"
	if Supported()[0].Code != "en-GB" {
		t.Fatal("Supported exposed internal slice")
	}
	seen := make(map[string]bool)
	for _, e := range Supported() {
		if seen[e.Code] {
			t.Fatalf("duplicate code %q", e.Code)
		}
		seen[e.Code] = true
		if !IsSupported(e.Code) {
			t.Errorf("listed code %q not reported supported", e.Code)
		}
	}
}
