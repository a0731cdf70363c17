package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value.Emit()
	}
	return out
}

func TestStartServiceSpan(t *testing.T) {
	recorder := installRecorder(t)

	ctx, span := telemetry.StartServiceSpan(context.Background(), "settlement", "settle",
		telemetry.WithAttribute(telemetry.SpanAttrAmount, "400000"),
		telemetry.WithAttribute("orders", 2),
	)
	assert.NotEmpty(t, telemetry.TraceID(ctx))
	assert.NotEmpty(t, telemetry.SpanID(ctx))
	telemetry.SetAttributes(span, telemetry.SpanAttrReceiptNo, "PT2410180001", 42, "ignored key", "partner_type", "customer")
	telemetry.SetAttribute(span, "success", true)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "settlement.settle", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "400000", attrs["amount"])
	assert.Equal(t, "2", attrs["orders"])
	assert.Equal(t, "PT2410180001", attrs["receipt_no"])
	assert.Equal(t, "customer", attrs["partner_type"])
	assert.Equal(t, "true", attrs["success"])
}

func TestRecordError(t *testing.T) {
	recorder := installRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "inventory_transaction.approve")
	telemetry.RecordError(span, errors.New("insufficient stock"))
	telemetry.RecordError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "insufficient stock", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, telemetry.TraceID(context.Background()))
	assert.Empty(t, telemetry.SpanID(context.Background()))
}

func TestSetup_Disabled(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), telemetry.Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.TracingEnabled())
	assert.NotNil(t, p.Meter("test"))
	assert.False(t, p.LogCore(zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
	p.EnableSpanProfiles()
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProfiler(t *testing.T) {
	t.Run("disabled profiler is a no-op", func(t *testing.T) {
		p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, nil)
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled profiler requires an address", func(t *testing.T) {
		_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "erp"}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestWithProfilingLabels(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var calls int
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelMethod: "POST",
		telemetry.ProfilingLabelRoute:  "/api/v1/payments/settle",
	}, func(inner context.Context) {
		calls++
		assert.Equal(t, "v", inner.Value(key{}))
	})
	telemetry.WithProfilingLabels(ctx, nil, func(inner context.Context) {
		calls++
		assert.Equal(t, ctx, inner)
	})
	assert.Equal(t, 2, calls)
}
