package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MiddlewareConfig configures the gin middleware around a Limiter.
type MiddlewareConfig struct {
	Limiter *Limiter
	// KeyFunc derives the client key. Nil falls back to DefaultKeyFunc.
	KeyFunc func(c *gin.Context) string
	// OnRejected renders the 429 response. Nil falls back to a plain
	// text body.
	OnRejected func(c *gin.Context, result Result)
}

// DefaultKeyFunc identifies clients by IP. Requests with no
// resolvable identity all share the "unknown" bucket, so the limiter
// fails open rather than blocking anonymous traffic outright.
func DefaultKeyFunc(c *gin.Context) string {
	if ip := strings.TrimSpace(c.ClientIP()); ip != "" {
		return ip
	}
	return "unknown"
}

// Middleware returns a gin handler enforcing the configured limiter.
func Middleware(cfg MiddlewareConfig) gin.HandlerFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = DefaultKeyFunc
	}
	onRejected := cfg.OnRejected
	if onRejected == nil {
		onRejected = func(c *gin.Context, _ Result) {
			c.String(http.StatusTooManyRequests, "Too many requests")
		}
	}

	return func(c *gin.Context) {
		result := cfg.Limiter.Allow(c.Request.Context(), keyFunc(c))
		if !result.Allowed {
			if retry := time.Until(result.ResetAt); retry > 0 {
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			}
			onRejected(c, result)
			c.Abort()
			return
		}
		c.Next()
	}
}
