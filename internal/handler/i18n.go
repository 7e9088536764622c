package handler

import "github.com/RKMF/kammerfest/internal/locale"

// Fixed chrome strings keyed by the Norwegian text. Content itself is
// bilingual in the database; this map only covers navigation and
// page titles baked into templates.
var fixedTitleMap = map[string]string{
	"Forside":               "Home",
	"Program":               "Programme",
	"Artister":              "Artists",
	"Nyheter":               "News",
	"Spillesteder":          "Venues",
	"Billetter":             "Tickets",
	"Alle dager":            "All days",
	"Alle spillesteder":     "All venues",
	"Ingen konserter funnet": "No concerts found",
	"Kjøp billett":          "Buy ticket",
	"Les mer":               "Read more",
	"Redaktørinnlogging":    "Editor Login",
	"Kontrollpanel":         "Dashboard",
	"Noe gikk galt. Prøv igjen senere.": "Something went wrong. Please try again later.",
	"Siden finnes ikke.":               "This page does not exist.",
	"For mange forespørsler. Prøv igjen om litt.": "Too many requests. Please try again shortly.",
}

func localizeFixedTitle(language, title string) string {
	if title == "" {
		return title
	}
	normalized := locale.NormalizeLanguage(language)
	if normalized == locale.LanguageEnglish {
		if mapped, ok := fixedTitleMap[title]; ok {
			return mapped
		}
		return title
	}
	for key, value := range fixedTitleMap {
		if value == title {
			return key
		}
	}
	return title
}
