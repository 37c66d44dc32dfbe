package tracing

import (
	"context"
	"time"

	"github.com/nextgen-2026/futureforged"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/nextgen-2026/futureforged")

type lmSpan struct {
	Provider    string
	ModelID     string
	Usage       *futureforged.ModelUsage
	StartTime   time.Time
	Structured  bool
	MaxTokens   *uint32
	Temperature *float64
	TopP        *float64
	TopK        *int32

	span trace.Span
}

// TraceGenerate wraps a single provider request in a gen_ai span.
func TraceGenerate(
	ctx context.Context,
	provider string,
	modelID string,
	input *futureforged.LanguageModelInput,
	fn func(context.Context) (*futureforged.ModelResponse, error),
) (*futureforged.ModelResponse, error) {
	ctx, span := newLMSpan(ctx, provider, modelID, input)
	defer span.OnEnd()

	response, err := fn(ctx)
	if err != nil {
		span.OnError(err)
		return nil, err
	}

	if response != nil {
		span.OnResponse(response)
	}

	return response, nil
}

func newLMSpan(
	ctx context.Context,
	provider string,
	modelID string,
	input *futureforged.LanguageModelInput,
) (context.Context, *lmSpan) {
	spanCtx, otelSpan := tracer.Start(ctx, "futureforged.provider.generate", trace.WithSpanKind(trace.SpanKindClient))

	s := &lmSpan{
		Provider:  provider,
		ModelID:   modelID,
		StartTime: time.Now(),
		span:      otelSpan,
	}
	if input != nil {
		s.MaxTokens = input.MaxTokens
		s.Temperature = input.Temperature
		s.TopP = input.TopP
		s.TopK = input.TopK
		s.Structured = input.ResponseFormat != nil && input.ResponseFormat.JSON != nil
	}
	return spanCtx, s
}

func (s *lmSpan) OnResponse(response *futureforged.ModelResponse) {
	if response == nil {
		return
	}
	if response.Usage != nil {
		s.Usage = response.Usage
	}
}

func (s *lmSpan) OnError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *lmSpan) OnEnd() {
	s.span.SetAttributes(
		attribute.String("gen_ai.operation.name", "generate_content"),
		attribute.String("gen_ai.provider.name", s.Provider),
		attribute.String("gen_ai.request.model", s.ModelID),
		attribute.Bool("futureforged.structured_output", s.Structured),
		attribute.Float64("futureforged.provider.duration_seconds", time.Since(s.StartTime).Seconds()),
	)

	if s.Usage != nil {
		s.span.SetAttributes(
			attribute.Int("gen_ai.usage.input_tokens", s.Usage.InputTokens),
			attribute.Int("gen_ai.usage.output_tokens", s.Usage.OutputTokens),
		)
	}

	if s.MaxTokens != nil {
		s.span.SetAttributes(attribute.Int64("gen_ai.request.max_tokens", int64(*s.MaxTokens)))
	}
	if s.Temperature != nil {
		s.span.SetAttributes(attribute.Float64("gen_ai.request.temperature", *s.Temperature))
	}
	if s.TopP != nil {
		s.span.SetAttributes(attribute.Float64("gen_ai.request.top_p", *s.TopP))
	}
	if s.TopK != nil {
		s.span.SetAttributes(attribute.Int64("gen_ai.request.top_k", int64(*s.TopK)))
	}

	s.span.End()
}
