package locale

// Pick returns the text matching the request language, defaulting to
// Norwegian. A missing translation falls back to the other language
// rather than rendering an empty string.
func Pick(language, norwegian, english string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return norwegian
	}
	if norwegian != "" {
		return norwegian
	}
	return english
}
