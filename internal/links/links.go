package links

import (
	"strings"

	"github.com/RKMF/kammerfest/internal/locale"
)

// Content types known to the resolver. These mirror the document
// types in the content store.
const (
	TypeEvent   = "event"
	TypeArtist  = "artist"
	TypeArticle = "article"
	TypePage    = "page"
	TypeVenue   = "venue"
)

var norwegianPrefixes = map[string]string{
	TypeEvent:   "/program",
	TypeArtist:  "/artister",
	TypeArticle: "/nyheter",
	TypePage:    "",
	TypeVenue:   "/steder",
}

var englishPrefixes = map[string]string{
	TypeEvent:   "/en/programme",
	TypeArtist:  "/en/artists",
	TypeArticle: "/en/news",
	TypePage:    "/en",
	TypeVenue:   "/en/venues",
}

// PathFor maps a content type, language and slug to the localized
// route path. Unknown types resolve to the localized front page so a
// stale reference never produces a broken link.
func PathFor(contentType, language, slug string) string {
	prefixes := norwegianPrefixes
	home := "/"
	if locale.NormalizeLanguage(language) == locale.LanguageEnglish {
		prefixes = englishPrefixes
		home = "/en"
	}

	prefix, ok := prefixes[contentType]
	if !ok {
		return home
	}

	cleaned := strings.Trim(strings.TrimSpace(slug), "/")
	if cleaned == "" {
		return home
	}

	// The front page is addressed by its well-known slug, not a path
	// segment.
	if contentType == TypePage && cleaned == "forside" {
		return home
	}

	return prefix + "/" + cleaned
}

// ListPathFor returns the localized listing path for a content type,
// e.g. the program overview for events.
func ListPathFor(contentType, language string) string {
	prefixes := norwegianPrefixes
	home := "/"
	if locale.NormalizeLanguage(language) == locale.LanguageEnglish {
		prefixes = englishPrefixes
		home = "/en"
	}
	prefix, ok := prefixes[contentType]
	if !ok || prefix == "" {
		return home
	}
	return prefix
}

// AbsoluteURL joins a resolved path with the configured site base
// URL.
func AbsoluteURL(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// AlternatePath returns the same document's path in the other
// language, used for hreflang links and the language switcher.
func AlternatePath(contentType, language, slug string) string {
	if locale.NormalizeLanguage(language) == locale.LanguageEnglish {
		return PathFor(contentType, locale.LanguageNorwegian, slug)
	}
	return PathFor(contentType, locale.LanguageEnglish, slug)
}
