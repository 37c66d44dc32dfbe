package clientutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nextgen-2026/futureforged"
)

// maxErrorBody bounds how much of an error response is kept in messages.
const maxErrorBody = 2048

// JSONRequestConfig holds configuration for JSON requests
type JSONRequestConfig struct {
	// Provider names the adapter in returned errors.
	Provider string
	URL      string
	Headers  map[string]string
	Body     any
}

// DoJSON performs a JSON POST request and unmarshals the response.
// Transport failures become Transport errors and HTTP status >= 400 becomes a
// StatusCode error carrying the provider's error message.
func DoJSON[T any](ctx context.Context, client *http.Client, config JSONRequestConfig) (*T, error) {
	if client == nil {
		client = http.DefaultClient
	}

	// Marshal request body
	reqBody, err := json.Marshal(config.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request failed: %w", ctxErr)
		}
		return nil, futureforged.NewTransportError(config.Provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, futureforged.NewTransportError(config.Provider, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode >= 400 {
		return nil, futureforged.NewStatusCodeError(config.Provider, resp.StatusCode, ErrorMessage(respBody))
	}

	var result T
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, futureforged.NewInvariantError(config.Provider, fmt.Sprintf("failed to unmarshal response: %v", err))
	}

	return &result, nil
}

// ErrorMessage extracts a human-readable message from a provider error body.
// It understands the {"error":{"message":...}} and {"error":"..."} shapes and
// falls back to the raw (truncated) body.
func ErrorMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			switch {
			case nested.Status != "":
				return nested.Status + ": " + nested.Message
			case nested.Type != "":
				return nested.Type + ": " + nested.Message
			}
			return nested.Message
		}
		var flat string
		if err := json.Unmarshal(envelope.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}
