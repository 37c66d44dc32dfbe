package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/internal/clientutils"
	"github.com/nextgen-2026/futureforged/internal/tracing"
	"github.com/nextgen-2026/futureforged/utils/ptr"
)

const (
	Provider       futureforged.ProviderName = "openai"
	DefaultBaseURL                           = "https://api.openai.com/v1"
	DefaultModelID                           = "gpt-4o-mini"
)

// OpenAIChatModel implements the LanguageModel interface using the Chat
// Completions API with Structured Outputs.
type OpenAIChatModel struct {
	modelID string
	apiKey  string
	baseURL string
	client  *http.Client
}

type OpenAIChatModelOptions struct {
	BaseURL string
	APIKey  string
	// HTTPClient defaults to a fresh http.Client.
	HTTPClient *http.Client
}

// NewOpenAIChatModel creates a new OpenAI model instance
func NewOpenAIChatModel(modelID string, options OpenAIChatModelOptions) *OpenAIChatModel {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelID == "" {
		modelID = DefaultModelID
	}
	client := options.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &OpenAIChatModel{
		modelID: modelID,
		apiKey:  options.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Provider returns the provider name
func (m *OpenAIChatModel) Provider() futureforged.ProviderName {
	return Provider
}

// ModelID returns the model ID
func (m *OpenAIChatModel) ModelID() string {
	return m.modelID
}

func (m *OpenAIChatModel) HasCredential() bool {
	return strings.TrimSpace(m.apiKey) != ""
}

func (m *OpenAIChatModel) Capabilities() futureforged.Capabilities {
	return futureforged.Capabilities{StructuredOutput: true}
}

// Generate implements synchronous generation
func (m *OpenAIChatModel) Generate(ctx context.Context, input *futureforged.LanguageModelInput) (*futureforged.ModelResponse, error) {
	return tracing.TraceGenerate(ctx, string(Provider), m.modelID, input, func(ctx context.Context) (*futureforged.ModelResponse, error) {
		params, err := convertToOpenAICreateParams(input, m.modelID)
		if err != nil {
			return nil, err
		}

		completion, err := clientutils.DoJSON[ChatCompletion](ctx, m.client, clientutils.JSONRequestConfig{
			Provider: string(Provider),
			URL:      fmt.Sprintf("%s/chat/completions", m.baseURL),
			Body:     params,
			Headers: map[string]string{
				"Authorization": fmt.Sprintf("Bearer %s", m.apiKey),
			},
		})
		if err != nil {
			return nil, err
		}

		if len(completion.Choices) == 0 {
			return nil, futureforged.NewInvariantError(string(Provider), "no choices in response")
		}

		choice := completion.Choices[0]
		if choice.Message.Refusal != nil && *choice.Message.Refusal != "" {
			return nil, futureforged.NewRefusalError(*choice.Message.Refusal)
		}
		if choice.FinishReason == FinishReasonContentFilter {
			return nil, futureforged.NewRefusalError("response was blocked by the content filter")
		}

		var text string
		if choice.Message.Content != nil {
			text = *choice.Message.Content
		}

		var usage *futureforged.ModelUsage
		if completion.Usage != nil {
			usage = &futureforged.ModelUsage{
				InputTokens:  int(completion.Usage.PromptTokens),
				OutputTokens: int(completion.Usage.CompletionTokens),
			}
		}

		return &futureforged.ModelResponse{Text: text, Usage: usage}, nil
	})
}

func convertToOpenAICreateParams(input *futureforged.LanguageModelInput, modelID string) (*ChatCompletionCreateParams, error) {
	if input == nil || strings.TrimSpace(input.Prompt) == "" {
		return nil, futureforged.NewInvalidInputError("prompt is required")
	}

	var messages []ChatCompletionMessageParam
	if input.SystemPrompt != nil && *input.SystemPrompt != "" {
		messages = append(messages, ChatCompletionMessageParam{Role: "system", Content: *input.SystemPrompt})
	}
	messages = append(messages, ChatCompletionMessageParam{Role: "user", Content: input.Prompt})

	params := &ChatCompletionCreateParams{
		Model:               modelID,
		Messages:            messages,
		Temperature:         input.Temperature,
		TopP:                input.TopP,
		MaxCompletionTokens: input.MaxTokens,
	}

	if input.ResponseFormat != nil {
		params.ResponseFormat = convertToOpenAIResponseFormat(*input.ResponseFormat)
	}

	return params, nil
}

func convertToOpenAIResponseFormat(responseFormat futureforged.ResponseFormatOption) *ResponseFormat {
	if responseFormat.Text != nil {
		return &ResponseFormat{Text: ptr.To(true)}
	}

	if responseFormat.JSON != nil && responseFormat.JSON.Schema != nil {
		return &ResponseFormat{
			JSONSchema: &ResponseFormatJSONSchema{
				Name:        responseFormat.JSON.Name,
				Description: responseFormat.JSON.Description,
				Schema:      responseFormat.JSON.Schema,
				Strict:      ptr.To(true),
			},
		}
	}
	return nil
}
