package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	Window    time.Duration
	Limit     int
	KeyPrefix string
}

// RateLimiter is a fixed-window per-user limiter backed by Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// Quota is the outcome of counting one request against a user's window
type Quota struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{redis: redisClient, config: config}
}

// NewAIAdjustmentRateLimiter limits adjustment generations to limit per user per hour
func NewAIAdjustmentRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:ai_adjustment",
	})
}

// RateLimitMiddleware enforces the limit for the authenticated user.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		quota, err := rl.Take(c.Request.Context(), userID)
		if err != nil {
			// Fail open
			log.Printf("[RateLimiter] Check failed for user %s: %v", userID, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(quota.ResetAt.Unix(), 10))

		if !quota.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You can request %d AI adjustments per %v", rl.config.Limit, rl.config.Window),
				"retry_after": int(time.Until(quota.ResetAt).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// Take counts one request for userID in the current window
func (rl *RateLimiter) Take(ctx context.Context, userID string) (Quota, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rl.config.Window)
		return nil
	})
	if err != nil {
		return Quota{}, fmt.Errorf("failed to count request: %w", err)
	}

	count := int(incr.Val())
	return Quota{
		Allowed:   count <= rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		ResetAt:   windowStart.Add(rl.config.Window),
	}, nil
}
