package handler

import (
	"net/http"

	"github.com/RKMF/kammerfest/internal/monitoring"
	"github.com/RKMF/kammerfest/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimited renders the localized throttling response. HTMX swaps
// get a fragment; everything else a plain page.
func (a *API) RateLimited(c *gin.Context, _ ratelimit.Result) {
	monitoring.TrackRateLimitRejection()

	pref := a.requestLocale(c)
	message := localizeFixedTitle(pref.Language, "For mange forespørsler. Prøv igjen om litt.")

	if isHTMXRequest(c) {
		a.renderHTML(c, http.StatusTooManyRequests, "fragment_error.html", gin.H{
			"message": message,
		})
		return
	}
	a.renderHTML(c, http.StatusTooManyRequests, "error.html", gin.H{
		"title":   a.siteSettings(c, pref.Language).Name,
		"message": message,
	})
}
