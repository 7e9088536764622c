package handler

import (
	"regexp"
	"strings"
	"time"
)

// Query parameters on the public filter endpoints are matched against
// these allow-lists. Anything that fails simply counts as unset; the
// raw value is never echoed back into markup or queries.
var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	dayPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const maxSlugLength = 96

// sanitizeSlug returns the slug when it matches the allow-list,
// otherwise the empty string.
func sanitizeSlug(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxSlugLength {
		return ""
	}
	if !slugPattern.MatchString(trimmed) {
		return ""
	}
	return trimmed
}

// sanitizeDay returns the day parameter when it is a real calendar
// date in YYYY-MM-DD form, otherwise the empty string.
func sanitizeDay(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !dayPattern.MatchString(trimmed) {
		return ""
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return ""
	}
	return trimmed
}

// validSlug reports whether a studio-submitted slug is acceptable.
func validSlug(raw string) bool {
	return sanitizeSlug(raw) != ""
}
