package locale

import "strings"

const (
	LanguageNorwegian = "no"
	LanguageEnglish   = "en"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

// NormalizeLanguage maps raw language tags to one of the supported
// languages. Both bokmål and nynorsk tags collapse to "no".
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "no") || strings.HasPrefix(trimmed, "nb") || strings.HasPrefix(trimmed, "nn") {
		return LanguageNorwegian
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if trimmed == "NO" {
		return LanguageNorwegian
	}
	return LanguageEnglish
}

func LanguageFromAcceptLanguage(header string) string {
	trimmed := strings.ToLower(strings.TrimSpace(header))
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "nb") || strings.Contains(trimmed, "nn") || strings.Contains(trimmed, "no") {
		return LanguageNorwegian
	}
	if strings.Contains(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	normalized := NormalizeLanguage(language)
	if normalized == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_GB", HTMLLang: "en"}
	}
	return Preference{Language: LanguageNorwegian, Locale: "nb_NO", HTMLLang: "nb-NO"}
}
