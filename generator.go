package futureforged

import (
	"context"

	"github.com/nextgen-2026/futureforged/utils/ptr"
	"go.uber.org/zap"
)

// GenerationParams are the sampling settings sent with every roadmap request.
type GenerationParams struct {
	Temperature *float64
	TopP        *float64
	TopK        *int32
	MaxTokens   *uint32
}

// DefaultGenerationParams mirrors the settings the roadmap prompt was tuned with.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature: ptr.To(0.7),
		TopP:        ptr.To(0.95),
		TopK:        ptr.To[int32](40),
		MaxTokens:   ptr.To[uint32](8192),
	}
}

// Generator turns a student profile into a validated Roadmap using a single
// provider request. It holds no mutable state and is safe for concurrent use.
type Generator struct {
	model      LanguageModel
	logger     *zap.Logger
	params     GenerationParams
	structured *bool
}

type GeneratorOption func(*Generator)

func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithGenerationParams(params GenerationParams) GeneratorOption {
	return func(g *Generator) {
		g.params = params
	}
}

// WithStructuredOutput overrides the model's capability. Passing false forces
// plain-text mode with lenient unwrapping even for schema-capable providers;
// passing true has no effect on providers that cannot enforce a schema.
func WithStructuredOutput(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.structured = &enabled
	}
}

func NewGenerator(model LanguageModel, opts ...GeneratorOption) *Generator {
	g := &Generator{
		model:  model,
		logger: zap.NewNop(),
		params: DefaultGenerationParams(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the provider adapter the generator sends requests to.
func (g *Generator) Model() LanguageModel {
	return g.model
}

func (g *Generator) useStructuredOutput() bool {
	capable := g.model.Capabilities().StructuredOutput
	if g.structured != nil {
		return capable && *g.structured
	}
	return capable
}

// GenerateRoadmap builds the prompt for profile, sends it to the provider and
// returns the validated roadmap. The category argument takes precedence over
// profile.Category. Every error is a *RoadmapError; no partial roadmap is ever
// returned.
func (g *Generator) GenerateRoadmap(ctx context.Context, category StudentCategory, profile StudentProfile) (roadmap *Roadmap, err error) {
	ctx, span := newRoadmapSpan(ctx, g.model, category)
	defer func() { span.end(err) }()

	if g.model == nil || !g.model.HasCredential() {
		g.logger.Warn("roadmap request rejected: provider credential is not configured")
		return nil, NewConfigurationError()
	}

	log := g.logger.With(
		zap.String("provider", string(g.model.Provider())),
		zap.String("model", g.model.ModelID()),
		zap.String("category", string(category)),
	)

	if !category.Valid() {
		return nil, NewInvalidProfileError("Please choose School or College.")
	}
	profile.Category = category
	if err := profile.Validate(); err != nil {
		log.Debug("roadmap request rejected: invalid profile", zap.Error(err))
		return nil, err
	}

	structured := g.useStructuredOutput()
	prompt, err := BuildPrompt(category, profile, structured)
	if err != nil {
		log.Error("failed to render roadmap prompt", zap.Error(err))
		return nil, newProviderError(ReasonProviderFailure, msgProviderFailure, err)
	}

	input := &LanguageModelInput{
		SystemPrompt: ptr.To(SystemPrompt),
		Prompt:       prompt,
		Temperature:  g.params.Temperature,
		TopP:         g.params.TopP,
		TopK:         g.params.TopK,
		MaxTokens:    g.params.MaxTokens,
	}
	if structured {
		schema := RoadmapSchema()
		input.ResponseFormat = ptr.To(NewResponseFormatJSON(roadmapSchemaName, ptr.To("A personalized student roadmap."), &schema))
	} else {
		input.ResponseFormat = ptr.To(NewResponseFormatText())
	}

	log.Info("requesting roadmap", zap.Bool("structured", structured))

	response, err := g.model.Generate(ctx, input)
	if err != nil {
		classified := ClassifyProviderError(err)
		log.Error("roadmap provider request failed",
			zap.String("kind", string(classified.Kind)),
			zap.String("reason", string(classified.Reason)),
			zap.Error(err),
		)
		return nil, classified
	}
	if response == nil {
		return nil, NewMalformedResponseError(ReasonEmpty, nil)
	}
	span.onUsage(response.Usage)

	roadmap, err = ParseRoadmap(response.Text)
	if err != nil {
		log.Warn("malformed roadmap response",
			zap.String("reason", string(ReasonOf(err))),
			zap.Int("response_bytes", len(response.Text)),
			zap.Error(err),
		)
		return nil, err
	}
	span.onRoadmap(roadmap, structured)

	fields := []zap.Field{
		zap.Int("steps", len(roadmap.Steps)),
		zap.Int("schedule_days", len(roadmap.WeeklySchedule)),
	}
	if response.Usage != nil {
		fields = append(fields,
			zap.Int("input_tokens", response.Usage.InputTokens),
			zap.Int("output_tokens", response.Usage.OutputTokens),
		)
	}
	log.Info("roadmap generated", fields...)

	return roadmap, nil
}
