package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the
// middleware. With an empty addr, or when the ping fails, redisClient stays
// nil and the limiter fails open.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// keep the server available without redis
		redisClient = nil
	}
}

// RedisRateLimit is a fixed-window limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		ident := c.ClientIP()
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail open on redis errors
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()

		c.Next()
	}
}
