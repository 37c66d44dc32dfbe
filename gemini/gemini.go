package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/tracing"
	"github.com/nextgen-2026/futureforged/utils/ptr"
	"google.golang.org/genai"
)

const (
	Provider       futureforged.ProviderName = "gemini"
	DefaultModelID                           = "gemini-2.5-flash"
)

type GeminiModelOptions struct {
	APIKey string
	// BaseURL overrides the Gemini API endpoint, mainly for tests and proxies.
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
}

// GeminiModel generates roadmaps through the Gemini API using the genai SDK.
// The client is created on first use so that a model without a credential can
// still be constructed and reported as unconfigured.
type GeminiModel struct {
	modelID string
	options GeminiModelOptions

	once      sync.Once
	client    *genai.Client
	clientErr error
}

func NewGeminiModel(modelID string, options GeminiModelOptions) *GeminiModel {
	if modelID == "" {
		modelID = DefaultModelID
	}
	return &GeminiModel{modelID: modelID, options: options}
}

func (m *GeminiModel) Provider() futureforged.ProviderName {
	return Provider
}

func (m *GeminiModel) ModelID() string {
	return m.modelID
}

func (m *GeminiModel) HasCredential() bool {
	return strings.TrimSpace(m.options.APIKey) != ""
}

func (m *GeminiModel) Capabilities() futureforged.Capabilities {
	return futureforged.Capabilities{StructuredOutput: true}
}

func (m *GeminiModel) getClient(ctx context.Context) (*genai.Client, error) {
	m.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:     m.options.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: m.options.HTTPClient,
			HTTPOptions: genai.HTTPOptions{
				BaseURL:    m.options.BaseURL,
				APIVersion: m.options.APIVersion,
			},
		}
		m.client, m.clientErr = genai.NewClient(ctx, cfg)
	})
	return m.client, m.clientErr
}

func (m *GeminiModel) Generate(ctx context.Context, input *futureforged.LanguageModelInput) (*futureforged.ModelResponse, error) {
	return tracing.TraceGenerate(ctx, string(Provider), m.modelID, input, func(ctx context.Context) (*futureforged.ModelResponse, error) {
		if input == nil || strings.TrimSpace(input.Prompt) == "" {
			return nil, futureforged.NewInvalidInputError("prompt is required")
		}

		client, err := m.getClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}

		config, err := convertToGenerateContentConfig(input)
		if err != nil {
			return nil, err
		}

		resp, err := client.Models.GenerateContent(ctx, m.modelID, genai.Text(input.Prompt), config)
		if err != nil {
			return nil, convertGeminiError(err)
		}

		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, futureforged.NewRefusalError(fmt.Sprintf("prompt was blocked: %s", resp.PromptFeedback.BlockReason))
		}
		if len(resp.Candidates) == 0 {
			return nil, futureforged.NewInvariantError(string(Provider), "no candidates in response")
		}
		if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return nil, futureforged.NewRefusalError("response was blocked for safety reasons")
		}

		var usage *futureforged.ModelUsage
		if resp.UsageMetadata != nil {
			usage = &futureforged.ModelUsage{
				InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
				OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			}
		}

		return &futureforged.ModelResponse{Text: resp.Text(), Usage: usage}, nil
	})
}

func convertToGenerateContentConfig(input *futureforged.LanguageModelInput) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{}

	if input.SystemPrompt != nil && *input.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(*input.SystemPrompt, genai.RoleUser)
	}
	if input.Temperature != nil {
		config.Temperature = ptr.To(float32(*input.Temperature))
	}
	if input.TopP != nil {
		config.TopP = ptr.To(float32(*input.TopP))
	}
	if input.TopK != nil {
		config.TopK = ptr.To(float32(*input.TopK))
	}
	if input.MaxTokens != nil {
		config.MaxOutputTokens = int32(*input.MaxTokens)
	}

	if input.ResponseFormat != nil && input.ResponseFormat.JSON != nil {
		config.ResponseMIMEType = "application/json"
		if input.ResponseFormat.JSON.Schema != nil {
			schema, err := convertToGeminiSchema(map[string]any(*input.ResponseFormat.JSON.Schema))
			if err != nil {
				return nil, err
			}
			config.ResponseSchema = schema
		}
	}

	return config, nil
}

// convertToGeminiSchema maps the JSON schema subset used for roadmaps onto the
// OpenAPI-flavoured genai.Schema. Keywords Gemini does not understand, such as
// additionalProperties, are dropped.
func convertToGeminiSchema(node map[string]any) (*genai.Schema, error) {
	schema := &genai.Schema{}

	typ, _ := node["type"].(string)
	switch typ {
	case "object":
		schema.Type = genai.TypeObject
	case "array":
		schema.Type = genai.TypeArray
	case "string":
		schema.Type = genai.TypeString
	case "integer":
		schema.Type = genai.TypeInteger
	case "number":
		schema.Type = genai.TypeNumber
	case "boolean":
		schema.Type = genai.TypeBoolean
	default:
		return nil, futureforged.NewUnsupportedError(string(Provider), fmt.Sprintf("unsupported schema type %q", typ))
	}

	if description, ok := node["description"].(string); ok {
		schema.Description = description
	}
	if title, ok := node["title"].(string); ok {
		schema.Title = title
	}

	if props, ok := node["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, futureforged.NewInvalidInputError(fmt.Sprintf("schema property %q is not an object", name))
			}
			converted, err := convertToGeminiSchema(child)
			if err != nil {
				return nil, err
			}
			schema.Properties[name] = converted
		}
	}

	if items, ok := node["items"].(map[string]any); ok {
		converted, err := convertToGeminiSchema(items)
		if err != nil {
			return nil, err
		}
		schema.Items = converted
	}

	switch required := node["required"].(type) {
	case []string:
		schema.Required = append([]string(nil), required...)
	case []any:
		for _, r := range required {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	// Gemini emits properties in this order; keep required fields first.
	if len(schema.Properties) > 0 {
		ordering := append([]string(nil), schema.Required...)
		var rest []string
		for name := range schema.Properties {
			if !slices.Contains(ordering, name) {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		schema.PropertyOrdering = append(ordering, rest...)
	}

	return schema, nil
}

func convertGeminiError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if apiErr.Status != "" {
			msg = apiErr.Status + ": " + msg
		}
		return futureforged.NewStatusCodeError(string(Provider), apiErr.Code, msg)
	}

	return futureforged.NewTransportError(string(Provider), err)
}
