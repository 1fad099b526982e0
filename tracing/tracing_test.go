package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/lvlp/tracing"
)

func TestStartFinish(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := tracing.Start(context.Background(), "lvlp.solve", tracing.Method("simplex"))
	require.True(t, span.SpanContext().IsValid())
	_, child := tracing.Start(ctx, "lvlp.child", tracing.Size(2, 3)...)
	tracing.Finish(child, "optimal", 12, nil)
	tracing.Finish(span, "infeasible", 0, errors.New("boom"))

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "lvlp.child", ended[0].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Equal(t, codes.Error, ended[1].Status().Code)

	var found bool
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "lvlp.status" {
			found = true
			assert.Equal(t, "optimal", kv.Value.AsString())
		}
	}
	assert.True(t, found)
}

func TestDisable(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := tracing.Disable(context.Background())
	assert.False(t, tracing.Enabled(ctx))
	assert.True(t, tracing.Enabled(context.Background()))

	got, span := tracing.Start(ctx, "lvlp.solve")
	assert.False(t, span.SpanContext().IsValid())
	assert.Equal(t, ctx, got)
	tracing.Finish(span, "optimal", 1, nil)
	assert.Empty(t, rec.Ended())
}
