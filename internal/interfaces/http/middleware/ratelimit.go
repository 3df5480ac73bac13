package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/interfaces/http/dto"
)

// RateLimiter is a fixed-window counter backed by Redis so limits hold
// across server instances.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter creates a Redis-backed rate limiter
func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: "grafica:ratelimit:" + prefix + ":",
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow increments the counter for key and reports whether the request is
// within the window's limit. Redis failures allow the request through.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int) {
	redisKey := rl.prefix + key

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		if rl.logger != nil {
			rl.logger.Error("Rate limit check failed", zap.Error(err))
		}
		return true, rl.limit
	}

	count := int(incr.Val())
	if count > rl.limit {
		return false, 0
	}
	return true, rl.limit - count
}

// Limit returns the configured request limit per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// RateLimit returns a middleware keyed by client IP, scoped per tenant when
// the request is authenticated.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		key := c.ClientIP()
		if tenantID := GetJWTTenantID(c); tenantID != "" {
			key = tenantID + ":" + key
		}
		return key
	})
}

// RateLimitByKey returns a rate limiting middleware with a custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(c.Request.Context(), keyFunc(c))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse("RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later."))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.Limit()))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}
