package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Entry describes one supported transcription language.
type Entry struct {
	Code string
	Name string
}

var languages = []Entry{
	{"en-GB", "English (British spelling)"},
	{"en", "English (American spelling)"},
	{"es", "Spanish"},
	{"de", "German"},
	{"ar", "Arabic"},
	{"bg", "Bulgarian"},
	{"bn", "Bengali"},
	{"ca", "Catalan"},
	{"cmn", "Chinese Mandarin"},
	{"hr", "Croatian"},
	{"cs", "Czech"},
	{"da", "Danish"},
	{"nl", "Dutch"},
	{"fa", "Farsi (Persian)"},
	{"fi", "Finnish"},
	{"fr", "French"},
	{"el", "Greek"},
	{"he", "Hebrew"},
	{"hi", "Hindi"},
	{"hu", "Hungarian"},
	{"it", "Italian"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"lv", "Latvian"},
	{"lt", "Lithuanian"},
	{"ms", "Malay"},
	{"no", "Norwegian"},
	{"pl", "Polish"},
	{"pt", "Portuguese"},
	{"ro", "Romanian"},
	{"ru", "Russian"},
	{"sk", "Slovakian"},
	{"sl", "Slovenian"},
	{"sv", "Swedish"},
	{"sw", "Swahili"},
	{"tr", "Turkish"},
	{"id", "Indonesian"},
	{"uk", "Ukrainian"},
	{"yue", "Cantonese"},
	{"cy", "Welsh"},
	{"ba", "Bashkir"},
	{"eu", "Basque"},
	{"be", "Belarusian"},
	{"et", "Estonian"},
	{"ga", "Irish"},
	{"gl", "Galician"},
	{"mn", "Mongolian"},
	{"mr", "Marathi"},
	{"mt", "Maltese"},
	{"ta", "Tamil"},
	{"th", "Thai"},
	{"ug", "Uyghur"},
	{"ur", "Urdu"},
	{"vi", "Vietnamese"},
}

var byCode map[string]*Entry

func init() {
	byCode = make(map[string]*Entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[strings.ToLower(e.Code)] = e
	}
}

// Normalize returns the canonical form of code. Empty input yields an empty
// string and no error. Malformed tags are rejected.
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}
	tag, err := xlanguage.Raw.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// IsSupported reports whether code, after normalization, is a known
// transcription language.
func IsSupported(code string) bool {
	normalized, err := Normalize(code)
	if err != nil || normalized == "" {
		return false
	}
	_, ok := byCode[strings.ToLower(normalized)]
	return ok
}

// DisplayName returns the human-readable name for code, or the code itself
// when it is not in the supported list.
func DisplayName(code string) string {
	normalized, err := Normalize(code)
	if err != nil || normalized == "" {
		return strings.TrimSpace(code)
	}
	if e, ok := byCode[strings.ToLower(normalized)]; ok {
		return e.Name
	}
	return normalized
}

// Supported returns the supported languages in presentation order.
func Supported() []Entry {
	out := make([]Entry, len(languages))
	copy(out, languages)
	return out
}
