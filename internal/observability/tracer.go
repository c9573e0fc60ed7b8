package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const InstrumentationName = "github.com/ferdian3456/communityclient"

type TraceContext struct {
	TraceID string
	SpanID  string
}

func ExtractTrace(ctx context.Context) *TraceContext {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}

	sc := span.SpanContext()

	return &TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// Tracer returns the tracer of the global provider at call time, so tests
// can swap the provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
