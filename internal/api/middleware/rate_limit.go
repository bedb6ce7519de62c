package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mindlyst/pkg/response"
)

type RateLimitMiddleware struct {
	client *redis.Client
}

func NewRateLimitMiddleware(client *redis.Client) *RateLimitMiddleware {
	return &RateLimitMiddleware{client: client}
}

// RateLimit bounds each user to a sliding window of requests per endpoint.
func (rm *RateLimitMiddleware) RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": response.MsgUnauthenticated})
			c.Abort()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", userID, c.Request.URL.Path)
		allowed, err := rm.check(c, key, requests, window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rm *RateLimitMiddleware) check(c *gin.Context, key string, limit int, window time.Duration) (bool, error) {
	ctx := c.Request.Context()
	now := time.Now()
	windowStart := now.Add(-window).Unix()

	pipe := rm.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return countCmd.Val() < int64(limit), nil
}
