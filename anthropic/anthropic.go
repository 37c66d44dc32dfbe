package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/clientutils"
	"github.com/nextgen-2026/futureforged/internal/tracing"
)

const (
	Provider          futureforged.ProviderName = "anthropic"
	DefaultBaseURL                              = "https://api.anthropic.com"
	DefaultAPIVersion                           = "2023-06-01"
	DefaultModelID                              = "claude-sonnet-4-5"
)

type AnthropicModelOptions struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Headers    map[string]string
	HTTPClient *http.Client
}

// AnthropicModel talks to the Messages API. The API has no schema-constrained
// output mode, so the model only accepts text response formats and relies on
// the prompt plus lenient unwrapping to get JSON back.
type AnthropicModel struct {
	modelID    string
	apiKey     string
	baseURL    string
	apiVersion string
	client     *http.Client
	headers    map[string]string
}

func NewAnthropicModel(modelID string, options AnthropicModelOptions) *AnthropicModel {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	apiVersion := options.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	if modelID == "" {
		modelID = DefaultModelID
	}

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	headers := map[string]string{}
	for k, v := range options.Headers {
		headers[k] = v
	}

	return &AnthropicModel{
		modelID:    modelID,
		apiKey:     options.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		client:     client,
		headers:    headers,
	}
}

func (m *AnthropicModel) Provider() futureforged.ProviderName {
	return Provider
}

func (m *AnthropicModel) ModelID() string {
	return m.modelID
}

func (m *AnthropicModel) HasCredential() bool {
	return strings.TrimSpace(m.apiKey) != ""
}

func (m *AnthropicModel) Capabilities() futureforged.Capabilities {
	return futureforged.Capabilities{StructuredOutput: false}
}

func (m *AnthropicModel) Generate(ctx context.Context, input *futureforged.LanguageModelInput) (*futureforged.ModelResponse, error) {
	return tracing.TraceGenerate(ctx, string(Provider), m.modelID, input, func(ctx context.Context) (*futureforged.ModelResponse, error) {
		params, err := convertToAnthropicCreateParams(input, m.modelID)
		if err != nil {
			return nil, err
		}

		response, err := clientutils.DoJSON[Message](ctx, m.client, clientutils.JSONRequestConfig{
			Provider: string(Provider),
			URL:      fmt.Sprintf("%s/v1/messages", m.baseURL),
			Body:     params,
			Headers:  m.requestHeaders(),
		})
		if err != nil {
			return nil, err
		}

		if response.StopReason != nil && *response.StopReason == StopReasonRefusal {
			return nil, futureforged.NewRefusalError("the model declined to answer")
		}

		var sb strings.Builder
		for _, block := range response.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}

		return &futureforged.ModelResponse{
			Text:  sb.String(),
			Usage: mapAnthropicUsage(response.Usage),
		}, nil
	})
}

func (m *AnthropicModel) requestHeaders() map[string]string {
	headers := map[string]string{
		"x-api-key":         m.apiKey,
		"anthropic-version": m.apiVersion,
	}

	for k, v := range m.headers {
		headers[k] = v
	}

	return headers
}

func convertToAnthropicCreateParams(input *futureforged.LanguageModelInput, modelID string) (*CreateMessageParams, error) {
	if input == nil || strings.TrimSpace(input.Prompt) == "" {
		return nil, futureforged.NewInvalidInputError("prompt is required")
	}
	if input.ResponseFormat != nil && input.ResponseFormat.JSON != nil {
		return nil, futureforged.NewUnsupportedError(string(Provider), "schema-constrained response format is not supported")
	}

	maxTokens := 4096
	if input.MaxTokens != nil {
		maxTokens = int(*input.MaxTokens)
	}

	params := &CreateMessageParams{
		Model: modelID,
		Messages: []MessageParam{
			{Role: "user", Content: []TextBlockParam{{Type: "text", Text: input.Prompt}}},
		},
		MaxTokens:   maxTokens,
		Temperature: input.Temperature,
		TopP:        input.TopP,
	}

	if input.SystemPrompt != nil {
		params.System = *input.SystemPrompt
	}

	if input.TopK != nil {
		topK := int(*input.TopK)
		params.TopK = &topK
	}

	return params, nil
}

func mapAnthropicUsage(usage Usage) *futureforged.ModelUsage {
	return &futureforged.ModelUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	}
}
