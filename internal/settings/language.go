package settings

import "sort"

// DefaultLanguage is used when no language has been chosen.
const (
	DefaultLanguage     = "English"
	DefaultLanguageCode = "en"
)

var languageCodes = map[string]string{
	"English": "en",
	"French":  "fr",
	"Spanish": "es",
	"Italian": "it",
	"German":  "de",
	"Dutch":   "nl",
	"Chinese": "zh",
}

// LanguageCode maps a language name to its two-letter code.
// Unknown and empty names map to English.
func LanguageCode(name string) string {
	code, ok := languageCodes[name]
	if !ok {
		return DefaultLanguageCode
	}

	return code
}

// Languages returns the supported language names sorted alphabetically.
func Languages() []string {
	names := make([]string, 0, len(languageCodes))
	for name := range languageCodes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// IsSupportedLanguage reports whether name appears in the language table.
func IsSupportedLanguage(name string) bool {
	_, ok := languageCodes[name]

	return ok
}
