package provider

import (
	"fmt"
	"net/http"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/anthropic"
	"github.com/nextgen-2026/futureforged/gemini"
	"github.com/nextgen-2026/futureforged/internal/config"
	"github.com/nextgen-2026/futureforged/openai"
)

// NewModel builds the adapter selected by cfg. A missing API key still yields
// a model; the pipeline reports it as a configuration error.
func NewModel(cfg config.LLMConfig, client *http.Client) (futureforged.LanguageModel, error) {
	switch cfg.Provider {
	case "gemini", "":
		return gemini.NewGeminiModel(cfg.Model, gemini.GeminiModelOptions{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: client,
		}), nil
	case "openai":
		return openai.NewOpenAIChatModel(cfg.Model, openai.OpenAIChatModelOptions{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: client,
		}), nil
	case "anthropic":
		return anthropic.NewAnthropicModel(cfg.Model, anthropic.AnthropicModelOptions{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: client,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
