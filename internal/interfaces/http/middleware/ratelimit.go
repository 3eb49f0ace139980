package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"melodia/internal/infrastructure/ratelimit"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/logger"
)

// RateLimit throttles a route per authenticated user. Limiter failures let
// the request through: the plan quota behind the guard is the real wall,
// this is abuse protection.
func RateLimit(limiter ratelimit.RateLimiter, scope string, config ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString(constants.ContextKeyUserSID)
		if sid == "" {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), sid+":"+scope, config)
		if err != nil {
			log.Warnw("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "rate_limited",
					"message": "too many requests, slow down",
				},
			})
			return
		}

		c.Next()
	}
}
