package futureforged

// LanguageModelInput defines the input to a language model.
type LanguageModelInput struct {
	// A system prompt is a way of providing context and instructions to the model
	SystemPrompt *string `json:"system_prompt,omitempty"`
	// The user instruction sent to the model.
	Prompt string `json:"prompt"`
	// The format that the model must output
	ResponseFormat *ResponseFormatOption `json:"response_format,omitempty"`
	// Amount of randomness injected into the response. Ranges from 0.0 to 1.0
	Temperature *float64 `json:"temperature,omitempty"`
	// An alternative to sampling with temperature, called nucleus sampling. Ranges from 0.0 to 1.0
	TopP *float64 `json:"top_p,omitempty"`
	// Only sample from the top K options for each subsequent token.
	TopK *int32 `json:"top_k,omitempty"`
	// The maximum number of tokens that can be generated in the response.
	MaxTokens *uint32 `json:"max_tokens,omitempty"`
}

// ModelResponse represents the response generated by the model.
type ModelResponse struct {
	// The raw text returned by the provider. Structured providers return JSON here.
	Text  string      `json:"text"`
	Usage *ModelUsage `json:"usage,omitempty"`
}

// ModelUsage represents the token usage of the model.
type ModelUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// JSONSchema is a JSON schema document.
type JSONSchema map[string]any

// ResponseFormatOption represents the format that the model must output.
type ResponseFormatOption struct {
	Text *ResponseFormatText `json:"text,omitempty"`
	JSON *ResponseFormatJSON `json:"json,omitempty"`
}

// ResponseFormatText specifies that the model response should be in plain text format.
type ResponseFormatText struct{}

// ResponseFormatJSON specifies that the model response should be in JSON format adhering to a specified schema.
type ResponseFormatJSON struct {
	// The name of the schema.
	Name string `json:"name"`
	// The description of the schema.
	Description *string     `json:"description,omitempty"`
	Schema      *JSONSchema `json:"schema,omitempty"`
}

// NewResponseFormatText creates a text response format
func NewResponseFormatText() ResponseFormatOption {
	return ResponseFormatOption{Text: &ResponseFormatText{}}
}

// NewResponseFormatJSON creates a JSON response format
func NewResponseFormatJSON(name string, description *string, schema *JSONSchema) ResponseFormatOption {
	return ResponseFormatOption{
		JSON: &ResponseFormatJSON{
			Name:        name,
			Description: description,
			Schema:      schema,
		},
	}
}
