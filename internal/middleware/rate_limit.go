// Package middleware contains gin middlewares shared by all routes.
package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sebasr/ticket-notifier/internal/config"
)

const rateLimitKeyPrefix = "ticket-notifier:limiter"

// NewRateLimitMiddleware creates a per-IP rate limiting middleware using ulule/limiter.
// Counters live in redis when cfg.RedisURL is set so every instance shares
// the same budget, in process memory otherwise. It returns nil when limiting
// is disabled.
func NewRateLimitMiddleware(cfg config.RateLimitConfig) (gin.HandlerFunc, error) {
	if cfg.PerMinute <= 0 {
		return nil, nil
	}

	store, err := newStore(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return NewRateLimitMiddlewareWithStore(store, cfg.PerMinute, time.Minute), nil
}

// NewRateLimitMiddlewareWithStore creates a rate limiting middleware with custom configuration
func NewRateLimitMiddlewareWithStore(store limiter.Store, limit int64, period time.Duration) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		}),
		// A broken limiter store must not block order confirmations
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			c.Next()
		}),
	)
}

func newStore(redisURL string) (limiter.Store, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitKeyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{
		Prefix: rateLimitKeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}
	return store, nil
}
