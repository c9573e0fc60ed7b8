package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/observability"
)

const RequestIDHeader = "X-Request-ID"

// RequestHook runs on every outbound API request before it is sent.
type RequestHook func(ctx context.Context, agent *fiber.Agent)

// TokenSource yields the bearer token of the current session, or "" when
// signed out.
type TokenSource interface {
	Token() string
}

func AuthHeader(source TokenSource) RequestHook {
	return func(ctx context.Context, agent *fiber.Agent) {
		token := source.Token()
		if token == "" {
			return
		}

		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
}

func RequestID() RequestHook {
	return func(ctx context.Context, agent *fiber.Agent) {
		agent.Set(RequestIDHeader, uuid.NewString())
	}
}

// PropagateTrace injects the span in ctx as a traceparent header.
func PropagateTrace() RequestHook {
	return func(ctx context.Context, agent *fiber.Agent) {
		otel.GetTextMapPropagator().Inject(ctx, agentCarrier{agent: agent})
	}
}

func LogRequest(log *zap.Logger) RequestHook {
	return func(ctx context.Context, agent *fiber.Agent) {
		request := agent.Request()
		observability.WithContext(ctx, log).Debug("api request",
			zap.ByteString("method", request.Header.Method()),
			zap.String("uri", request.URI().String()),
			zap.ByteString("request_id", request.Header.Peek(RequestIDHeader)),
		)
	}
}

type agentCarrier struct {
	agent *fiber.Agent
}

func (carrier agentCarrier) Get(key string) string {
	return string(carrier.agent.Request().Header.Peek(key))
}

func (carrier agentCarrier) Set(key string, value string) {
	carrier.agent.Set(key, value)
}

func (carrier agentCarrier) Keys() []string {
	keys := make([]string, 0)
	carrier.agent.Request().Header.VisitAll(func(key, _ []byte) {
		keys = append(keys, string(key))
	})

	return keys
}
