package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request's trace and
// span ids in the fiber locals. It must run after otelfiber.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spanContext := trace.SpanFromContext(c.UserContext()).SpanContext()

		traceLogger := logger.With(
			zap.String("trace_id", spanContext.TraceID().String()),
			zap.String("span_id", spanContext.SpanID().String()),
			zap.String("request_id", c.Get(RequestIDHeader)),
		)

		c.Locals("logger", traceLogger)

		return c.Next()
	}
}

// GetLoggerFromContext returns the logger stored by TraceLoggerMiddleware.
func GetLoggerFromContext(c *fiber.Ctx) *zap.Logger {
	if logger, ok := c.Locals("logger").(*zap.Logger); ok {
		return logger
	}

	return zap.NewNop()
}
