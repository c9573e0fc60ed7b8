package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticToken string

func (token staticToken) Token() string {
	return string(token)
}

func newAgent() *fiber.Agent {
	client := &fiber.Client{}
	return client.Get("http://127.0.0.1:1/api/Post/GetAllPosts")
}

func TestAuthHeader(t *testing.T) {
	agent := newAgent()
	AuthHeader(staticToken("abc"))(context.Background(), agent)
	assert.Equal(t, "Bearer abc", string(agent.Request().Header.Peek(fiber.HeaderAuthorization)))

	signedOut := newAgent()
	AuthHeader(staticToken(""))(context.Background(), signedOut)
	assert.Empty(t, signedOut.Request().Header.Peek(fiber.HeaderAuthorization))
}

func TestRequestID(t *testing.T) {
	agent := newAgent()
	RequestID()(context.Background(), agent)

	_, err := uuid.Parse(string(agent.Request().Header.Peek(RequestIDHeader)))
	assert.NoError(t, err)
}

func TestPropagateTrace(t *testing.T) {
	previous := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(previous) })

	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	agent := newAgent()
	PropagateTrace()(ctx, agent)

	traceparent := string(agent.Request().Header.Peek("traceparent"))
	assert.Contains(t, traceparent, span.SpanContext().TraceID().String())

	carrier := agentCarrier{agent: agent}
	assert.Contains(t, carrier.Keys(), "Traceparent")
}

func TestLogRequest(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	agent := newAgent()
	RequestID()(context.Background(), agent)
	LogRequest(zap.New(core))(context.Background(), agent)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Contains(t, fields["uri"], "/api/Post/GetAllPosts")
}

func TestTraceLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(TraceLoggerMiddleware(zap.New(core)))
	app.Get("/ping", func(c *fiber.Ctx) error {
		GetLoggerFromContext(c).Info("handled")
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}
