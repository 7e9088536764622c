package handler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Video sections and embedded players are restricted to a short list
// of hosts. Everything else is rejected at save time and stripped at
// render time.
var (
	videoEmbedSrcPattern = regexp.MustCompile(
		`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`,
	)
	videoEmbedHosts = map[string]bool{
		"youtube.com":         true,
		"www.youtube.com":     true,
		"youtube-nocookie.com": true,
		"player.vimeo.com":    true,
		"vimeo.com":           true,
		"www.vimeo.com":       true,
	}
)

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-embed").OnElements("div")
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy", "sandbox").OnElements("iframe")
	return policy
}

// videoEmbedAllowed reports whether a URL may be used as a video
// section source: https only, on a whitelisted host.
func videoEmbedAllowed(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	if parsed.Scheme != "https" {
		return false
	}
	if !videoEmbedHosts[strings.ToLower(parsed.Hostname())] {
		return false
	}
	return true
}

// embedURLFor rewrites a watch/share URL into the embeddable player
// URL. Returns the empty string when the URL is not embeddable.
func embedURLFor(raw string) string {
	if !videoEmbedAllowed(raw) {
		return ""
	}
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.HasSuffix(host, "youtube.com") || strings.HasSuffix(host, "youtube-nocookie.com"):
		if strings.HasPrefix(parsed.Path, "/embed/") {
			return "https://www.youtube.com" + parsed.Path
		}
		if id := parsed.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case host == "player.vimeo.com":
		if strings.HasPrefix(parsed.Path, "/video/") {
			return "https://player.vimeo.com" + parsed.Path
		}
	case strings.HasSuffix(host, "vimeo.com"):
		id := strings.Trim(parsed.Path, "/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + url.PathEscape(id)
		}
	}
	return ""
}
