package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/astroseva/backend-go/internal/config"
)

// RateLimiter throttles credential-guessing by limiting auth attempts per
// client IP inside a fixed window, backed by Redis
type RateLimiter interface {
	// Allow records one attempt for the key and reports whether it is still
	// within the window limit
	Allow(ctx context.Context, clientIP string) (bool, error)

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based rate limiter
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisRateLimiter{
		client: client,
		limit:  cfg.AuthRateLimit,
		window: time.Duration(cfg.AuthRateWindow) * time.Second,
		logger: logger,
	}, nil
}

// authKey generates the Redis key for auth attempts
// Format: rate:auth:{clientIP}
func authKey(clientIP string) string {
	return fmt.Sprintf("rate:auth:%s", clientIP)
}

func (r *redisRateLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	// If limit is 0 or negative, unlimited
	if r.limit <= 0 {
		return true, nil
	}

	key := authKey(clientIP)

	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	// The expiry starts the window on the first attempt; NX keeps later
	// attempts from sliding it
	pipe.ExpireNX(ctx, key, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to count attempt", "error", err, "client_ip", clientIP)
		// On error, allow the request but log it
		return true, err
	}

	return incr.Val() <= r.limit, nil
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// LimitAuthAttempts is the gin middleware guarding the signup and login
// endpoints with the given limiter
func LimitAuthAttempts(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err == nil && !allowed {
			logger.Warn("⚠️ [RateLimiter] Auth attempt limit exceeded", "client_ip", c.ClientIP())
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	return true, nil
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}
