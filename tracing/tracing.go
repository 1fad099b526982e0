// Package tracing wraps OpenTelemetry spans around solver runs.
//
// The package only talks to the global tracer provider; installing an
// exporter is the embedding program's job. With the default no-op provider
// every call here is effectively free.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// instrumentation is the tracer name reported with every span.
const instrumentation = "github.com/katalvlaran/lvlp"

type disabledKey struct{}

// Disable returns a context under which Start opens no spans, whatever the
// global provider.
func Disable(ctx context.Context) context.Context {
	return context.WithValue(ctx, disabledKey{}, true)
}

// Enabled reports whether Start records spans under ctx.
func Enabled(ctx context.Context) bool {
	off, _ := ctx.Value(disabledKey{}).(bool)
	return !off
}

// Start opens a span named name as a child of ctx. The caller must End it,
// usually through Finish. Under a Disable'd context the span is a no-op and
// ctx is returned unchanged.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !Enabled(ctx) {
		return ctx, noop.Span{}
	}

	return otel.Tracer(instrumentation).Start(ctx, name, trace.WithAttributes(attrs...))
}

// Finish records the run outcome on span and ends it. A non-nil err marks
// the span as failed.
func Finish(span trace.Span, status string, objective float64, err error) {
	span.SetAttributes(
		attribute.String("lvlp.status", status),
		attribute.Float64("lvlp.objective", objective),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Method is the span attribute naming the solve method.
func Method(name string) attribute.KeyValue { return attribute.String("lvlp.method", name) }

// Size is the pair of span attributes describing model dimensions.
func Size(rows, cols int) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int("lvlp.rows", rows), attribute.Int("lvlp.cols", cols)}
}
