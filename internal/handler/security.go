package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// The policy is a static string: the site serves its own assets plus
// whitelisted media hosts, and the studio needs inline event handlers
// from the editor widgets.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"img-src 'self' data: https:",
	"media-src 'self' https:",
	"frame-src https://www.youtube.com https://www.youtube-nocookie.com https://player.vimeo.com",
	"script-src 'self' 'unsafe-inline' https://unpkg.com",
	"style-src 'self' 'unsafe-inline'",
	"connect-src 'self'",
}, "; ")

// SecurityHeaders applies the global response headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", contentSecurityPolicy)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if !strings.HasPrefix(c.Request.URL.Path, "/studio") {
			c.Header("X-Frame-Options", "DENY")
		}
		c.Next()
	}
}

// FragmentCORS allows the filter fragments to be fetched cross-origin
// for read-only GET requests.
func FragmentCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "HX-Request, HX-Current-URL")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
