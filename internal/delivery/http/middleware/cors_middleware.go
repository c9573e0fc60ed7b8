package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupCORS lets browser-based tooling on origins talk to the stub API.
func SetupCORS(origins string) fiber.Handler {
	if origins == "" {
		origins = "http://localhost:3000, http://localhost:8080"
	}

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID, traceparent",
		ExposeHeaders: "Content-Length, X-Request-ID",
		MaxAge:        86400, // Pre-flight request can be cached for 1 day
	})
}
