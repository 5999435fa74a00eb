package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
)

const rateLimitWindow = 60 * time.Second

// RateLimit counts requests per client address in fixed 60s windows.
// The first hit in a window creates the counter and sets its expiry;
// anything past the limit is rejected with 429.
func RateLimit(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.ClientIP()
		if host == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "ratelimit:" + host

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		// Set expiration only when the key is created.
		if count == 1 {
			if err := rdb.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				c.Error(err)
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			c.Error(apperror.ErrRateLimitExceeded)
			c.Abort()
			return
		}

		c.Next()
	}
}
