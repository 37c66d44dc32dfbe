package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/tracing"
	"github.com/nextgen-2026/futureforged/utils/ptr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestTraceGenerate(t *testing.T) {
	recorder := installRecorder(t)

	input := &futureforged.LanguageModelInput{
		Prompt:         "hi",
		Temperature:    ptr.To(0.7),
		MaxTokens:      ptr.To[uint32](8192),
		ResponseFormat: ptr.To(futureforged.NewResponseFormatJSON("roadmap", nil, nil)),
	}
	resp, err := tracing.TraceGenerate(t.Context(), "openai", "gpt-4o", input, func(ctx context.Context) (*futureforged.ModelResponse, error) {
		return &futureforged.ModelResponse{Text: "{}", Usage: &futureforged.ModelUsage{InputTokens: 12, OutputTokens: 34}}, nil
	})
	if err != nil || resp.Text != "{}" {
		t.Fatalf("unexpected result %v %v", resp, err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	attrs := attrMap(spans[0].Attributes())
	if got := attrs["gen_ai.provider.name"].AsString(); got != "openai" {
		t.Errorf("unexpected provider %q", got)
	}
	if got := attrs["gen_ai.usage.output_tokens"].AsInt64(); got != 34 {
		t.Errorf("unexpected output tokens %d", got)
	}
	if got := attrs["gen_ai.request.max_tokens"].AsInt64(); got != 8192 {
		t.Errorf("unexpected max tokens %d", got)
	}
	if !attrs["futureforged.structured_output"].AsBool() {
		t.Error("expected structured output attribute")
	}
}

func TestTraceGenerateError(t *testing.T) {
	recorder := installRecorder(t)

	boom := errors.New("boom")
	_, err := tracing.TraceGenerate(t.Context(), "gemini", "gemini-2.5-flash", nil, func(ctx context.Context) (*futureforged.ModelResponse, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status())
	}
}
