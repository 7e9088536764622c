package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "kf_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// EnsureVisitorID assigns every browser a stable anonymous id. The
// rate limiter keys on it so clients behind a shared NAT do not get
// throttled as one.
func EnsureVisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if visitorID(c) == "" {
			id := uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
			c.Set(visitorCookieName, id)
		}
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	if cached, exists := c.Get(visitorCookieName); exists {
		if id, ok := cached.(string); ok {
			return id
		}
	}
	value, err := c.Cookie(visitorCookieName)
	if err != nil {
		return ""
	}
	value = strings.TrimSpace(value)
	if _, err := uuid.Parse(value); err != nil {
		return ""
	}
	return value
}

// RateLimitKey prefers the visitor cookie and falls back to the
// client IP. With neither, all anonymous traffic shares one bucket.
func RateLimitKey(c *gin.Context) string {
	if id := visitorID(c); id != "" {
		return "visitor:" + id
	}
	if ip := strings.TrimSpace(c.ClientIP()); ip != "" {
		return "ip:" + ip
	}
	return "unknown"
}
