package anthropic

// https://docs.anthropic.com/en/api/messages

// CreateMessageParams is the request body of POST /v1/messages.
type CreateMessageParams struct {
	Model       string         `json:"model"`
	Messages    []MessageParam `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	System      string         `json:"system,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	TopP        *float64       `json:"top_p,omitempty"`
	TopK        *int           `json:"top_k,omitempty"`
}

type MessageParam struct {
	// Either "user" or "assistant".
	Role    string           `json:"role"`
	Content []TextBlockParam `json:"content"`
}

type TextBlockParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is a response from the Messages API.
type Message struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason *StopReason    `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// ContentBlock is any block in Message.Content. Only text blocks carry Text.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type StopReason string

const (
	StopReasonEndTurn   StopReason = "end_turn"
	StopReasonMaxTokens StopReason = "max_tokens"
	StopReasonRefusal   StopReason = "refusal"
)

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
