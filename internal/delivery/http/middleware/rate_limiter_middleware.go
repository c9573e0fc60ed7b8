package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// SetupLoginRateLimiter limits login attempts per IP. A max of zero turns
// limiting off.
func SetupLoginRateLimiter(logger *zap.Logger, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return max <= 0
		},
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Login rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"IsSuccess": false,
				"Data":      nil,
				"Message":   "Too many login attempts, please try again later",
			})
		},
	})
}

// SetupRateLimiter is the general per-IP limit for the whole API.
func SetupRateLimiter(logger *zap.Logger, max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			// Skip rate limiting for health check endpoint
			return max <= 0 || c.Path() == "/api/health"
		},
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"IsSuccess": false,
				"Data":      nil,
				"Message":   "Rate limit exceeded, please try again later",
			})
		},
	})
}
