package futureforged

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/nextgen-2026/futureforged"
)

func getTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

type roadmapSpan struct {
	startTime time.Time
	span      trace.Span
}

func newRoadmapSpan(ctx context.Context, model LanguageModel, category StudentCategory) (context.Context, *roadmapSpan) {
	attrs := []attribute.KeyValue{
		attribute.String("futureforged.student.category", string(category)),
	}
	if model != nil {
		attrs = append(attrs,
			attribute.String("gen_ai.provider.name", string(model.Provider())),
			attribute.String("gen_ai.request.model", model.ModelID()),
		)
	}

	spanCtx, span := getTracer().Start(ctx, "futureforged.generate_roadmap", trace.WithAttributes(attrs...))
	return spanCtx, &roadmapSpan{startTime: time.Now(), span: span}
}

func (s *roadmapSpan) onRoadmap(roadmap *Roadmap, structured bool) {
	s.span.SetAttributes(
		attribute.Bool("futureforged.structured_output", structured),
		attribute.Int("futureforged.roadmap.steps", len(roadmap.Steps)),
		attribute.Int("futureforged.roadmap.schedule_days", len(roadmap.WeeklySchedule)),
	)
}

func (s *roadmapSpan) onUsage(usage *ModelUsage) {
	if usage == nil {
		return
	}
	s.span.SetAttributes(
		attribute.Int("gen_ai.usage.input_tokens", usage.InputTokens),
		attribute.Int("gen_ai.usage.output_tokens", usage.OutputTokens),
	)
}

func (s *roadmapSpan) end(err error) {
	s.span.SetAttributes(attribute.Float64("futureforged.duration_seconds", time.Since(s.startTime).Seconds()))
	if err != nil {
		s.span.RecordError(err)
		s.span.SetAttributes(
			attribute.String("futureforged.error.kind", string(KindOf(err))),
			attribute.String("futureforged.error.reason", string(ReasonOf(err))),
		)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}
