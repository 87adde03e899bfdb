package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// RateLimit allows limit requests per window on one route. Authenticated
// callers (validate_qr) are counted per user, anonymous ones (login,
// register) per client IP. Without Redis, or on a Redis error, requests pass.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Round(time.Second) / time.Second))
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		allowed, err := rdb.CheckRateLimit(c.Request.Context(), rateLimitKey(c), limit, window)
		if err != nil || allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", retryAfter)
		response.Error(c, http.StatusTooManyRequests, response.CodeTooManyRequests, "too many requests, try again later")
		c.Abort()
	}
}

func rateLimitKey(c *gin.Context) string {
	if id, ok := c.Get(CtxUserID); ok {
		return fmt.Sprintf("rate_limit:%s:user:%v", c.FullPath(), id)
	}
	return fmt.Sprintf("rate_limit:%s:ip:%s", c.FullPath(), c.ClientIP())
}
