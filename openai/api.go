package openai

import (
	"encoding/json"
	"fmt"

	"github.com/nextgen-2026/futureforged"
)

// https://platform.openai.com/docs/api-reference/chat

// ChatCompletionCreateParams represents the parameters for creating a chat completion
type ChatCompletionCreateParams struct {
	// A list of messages comprising the conversation so far.
	Messages []ChatCompletionMessageParam `json:"messages"`

	// Model ID used to generate the response, like `gpt-4o` or `o3`.
	Model string `json:"model"`

	// An upper bound for the number of tokens that can be generated for a
	// completion, including visible output tokens and reasoning tokens.
	MaxCompletionTokens *uint32 `json:"max_completion_tokens,omitempty"`

	// An object specifying the format that the model must output.
	//
	// Setting to `{ "type": "json_schema", "json_schema": {...} }` enables
	// Structured Outputs which ensures the model will match your supplied
	// JSON schema.
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// What sampling temperature to use, between 0 and 2.
	Temperature *float64 `json:"temperature,omitempty"`

	// An alternative to sampling with temperature, called nucleus sampling.
	TopP *float64 `json:"top_p,omitempty"`
}

// ChatCompletionMessageParam is a single text message in the conversation.
type ChatCompletionMessageParam struct {
	// The role of the messages author: `system` or `user`.
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ResponseFormat struct {
	// Default response format. Used to generate text responses.
	Text *bool `json:"-"`

	// JSON Schema response format. Used to generate structured JSON responses.
	JSONSchema *ResponseFormatJSONSchema `json:"-"`
}

func (r ResponseFormat) MarshalJSON() ([]byte, error) {
	if r.Text != nil {
		return json.Marshal(map[string]string{"type": "text"})
	}
	if r.JSONSchema != nil {
		return json.Marshal(struct {
			Type       string                   `json:"type"`
			JSONSchema ResponseFormatJSONSchema `json:"json_schema"`
		}{
			Type:       "json_schema",
			JSONSchema: *r.JSONSchema,
		})
	}
	return nil, fmt.Errorf("response format has no content")
}

func (r *ResponseFormat) UnmarshalJSON(data []byte) error {
	var temp struct {
		Type       string                    `json:"type"`
		JSONSchema *ResponseFormatJSONSchema `json:"json_schema,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	switch temp.Type {
	case "text":
		t := true
		r.Text = &t
	case "json_schema":
		r.JSONSchema = temp.JSONSchema
	default:
		return fmt.Errorf("unknown response format type: %s", temp.Type)
	}
	return nil
}

// Structured Outputs configuration options, including a JSON Schema.
type ResponseFormatJSONSchema struct {
	// The name of the response format. Must be a-z, A-Z, 0-9, or contain
	// underscores and dashes, with a maximum length of 64.
	Name string `json:"name"`

	// A description of what the response format is for.
	Description *string `json:"description,omitempty"`

	// The schema for the response format, described as a JSON Schema object.
	Schema *futureforged.JSONSchema `json:"schema,omitempty"`

	// Whether to enable strict schema adherence when generating the output.
	Strict *bool `json:"strict,omitempty"`
}

// Represents a chat completion response returned by model, based on the
// provided input.
type ChatCompletion struct {
	ID      string                 `json:"id"`
	Choices []ChatCompletionChoice `json:"choices"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Object  string                 `json:"object"`
	Usage   *CompletionUsage       `json:"usage,omitempty"`
}

type ChatCompletionChoice struct {
	// The reason the model stopped generating tokens.
	FinishReason FinishReason          `json:"finish_reason"`
	Index        int32                 `json:"index"`
	Message      ChatCompletionMessage `json:"message"`
}

// FinishReason represents why the model stopped generating
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// Usage statistics for the completion request.
type CompletionUsage struct {
	CompletionTokens uint32 `json:"completion_tokens"`
	PromptTokens     uint32 `json:"prompt_tokens"`
	TotalTokens      uint32 `json:"total_tokens"`
}

// A chat completion message generated by the model.
type ChatCompletionMessage struct {
	// The contents of the message.
	Content *string `json:"content"`

	// The refusal message generated by the model.
	Refusal *string `json:"refusal"`

	Role string `json:"role"`
}
