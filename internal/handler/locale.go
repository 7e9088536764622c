package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/RKMF/kammerfest/internal/locale"
	"github.com/gin-gonic/gin"
)

const (
	localeContextKey     = "__request_locale"
	languageCookieName   = "kf_lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

var countryHeaderCandidates = []string{
	"CF-IPCountry",
	"X-Geo-Country",
	"X-Forwarded-Country",
	"X-Country-Code",
}

// LocaleMiddleware resolves request language and sets headers for
// downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		if pref.HTMLLang != "" {
			c.Header("Content-Language", pref.HTMLLang)
		}
		varyHeaders := append([]string{"Accept-Language"}, countryHeaderCandidates...)
		if readLanguageCookie(c) != "" || locale.NormalizeLanguage(c.Query("lang")) != "" {
			varyHeaders = append(varyHeaders, "Cookie")
		}
		appendVaryHeader(c, varyHeaders...)
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	language, persist := a.resolveLanguage(c)
	pref := locale.PreferenceForLanguage(language)
	if persist {
		a.persistLanguage(c, pref.Language)
	}
	c.Set(localeContextKey, pref)
	return pref
}

func (a *API) resolveLanguage(c *gin.Context) (string, bool) {
	// The URL decides on the public site: everything under /en is
	// English, the rest Norwegian. Headers and cookies only break
	// ties for routes outside the localized trees, like fragments
	// requested with an explicit override.
	path := c.Request.URL.Path
	if path == "/en" || strings.HasPrefix(path, "/en/") {
		return locale.LanguageEnglish, false
	}

	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		return override, true
	}
	if cookie := readLanguageCookie(c); cookie != "" {
		return cookie, false
	}
	if country := readCountryHeader(c); country != "" {
		return locale.LanguageFromCountryCode(country), false
	}
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader, false
	}
	return locale.LanguageNorwegian, false
}

func (a *API) persistLanguage(c *gin.Context, language string) {
	normalized := locale.NormalizeLanguage(language)
	if normalized == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(languageCookieName, url.QueryEscape(normalized), languageCookieMaxAge, "/", "", false, false)
}

func readLanguageCookie(c *gin.Context) string {
	value, err := c.Cookie(languageCookieName)
	if err != nil {
		return ""
	}
	unescaped, err := url.QueryUnescape(value)
	if err != nil {
		return ""
	}
	return locale.NormalizeLanguage(unescaped)
}

func readCountryHeader(c *gin.Context) string {
	for _, header := range countryHeaderCandidates {
		if value := strings.TrimSpace(c.GetHeader(header)); value != "" {
			return value
		}
	}
	return ""
}

func appendVaryHeader(c *gin.Context, values ...string) {
	existing := c.Writer.Header().Values("Vary")
	seen := make(map[string]bool, len(existing)+len(values))
	for _, value := range existing {
		for _, part := range strings.Split(value, ",") {
			seen[strings.ToLower(strings.TrimSpace(part))] = true
		}
	}
	for _, value := range values {
		if !seen[strings.ToLower(value)] {
			c.Writer.Header().Add("Vary", value)
			seen[strings.ToLower(value)] = true
		}
	}
}
