package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nextgen-2026/futureforged"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "futureforged.yaml"

// Config holds all FutureForged configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// LLMConfig selects the provider adapter and its sampling settings.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, anthropic
	// APIKey is normally supplied through the environment.
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	Timeout     string   `yaml:"timeout"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *uint32  `yaml:"max_tokens"`
	// Structured set to false forces plain-text mode on schema-capable providers.
	Structured *bool `yaml:"structured"`
}

type LoggingConfig struct {
	Mode  string `yaml:"mode"` // dev, prod
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Timeout:  "60s",
		},
		Logging: LoggingConfig{
			Mode: "dev",
			File: "futureforged.log",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads .env, then the YAML file at path, then environment overrides.
// A missing file at DefaultPath is not an error; an explicitly named file must
// exist. A missing API key is not an error either: the pipeline reports it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := env("FUTUREFORGED_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := env("FUTUREFORGED_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := env("FUTUREFORGED_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := env("FUTUREFORGED_TIMEOUT"); v != "" {
		c.LLM.Timeout = v
	}
	if key := credentialFromEnv(c.LLM.Provider); key != "" {
		c.LLM.APIKey = key
	}

	if v := env("FUTUREFORGED_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid FUTUREFORGED_TEMPERATURE %q: %w", v, err)
		}
		c.LLM.Temperature = &f
	}
	if v := env("FUTUREFORGED_MAX_TOKENS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid FUTUREFORGED_MAX_TOKENS %q: %w", v, err)
		}
		u := uint32(n)
		c.LLM.MaxTokens = &u
	}
	if v := env("FUTUREFORGED_STRUCTURED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FUTUREFORGED_STRUCTURED %q: %w", v, err)
		}
		c.LLM.Structured = &b
	}

	if v := env("FUTUREFORGED_LOG_MODE"); v != "" {
		c.Logging.Mode = v
	}
	if v := env("FUTUREFORGED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := env("FUTUREFORGED_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	return nil
}

func credentialFromEnv(provider string) string {
	switch provider {
	case "gemini":
		if key := env("GEMINI_API_KEY"); key != "" {
			return key
		}
		return env("API_KEY")
	case "openai":
		return env("OPENAI_API_KEY")
	case "anthropic":
		return env("ANTHROPIC_API_KEY")
	}
	return ""
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q (want gemini, openai or anthropic)", c.LLM.Provider)
	}
	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", *c.LLM.Temperature)
	}
	if _, err := time.ParseDuration(c.LLM.Timeout); c.LLM.Timeout != "" && err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.LLM.Timeout, err)
	}
	return nil
}

// GetTimeout returns the per-request timeout, or 0 for none.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GenerationParams applies configured overrides on top of the pipeline defaults.
func (c *Config) GenerationParams() futureforged.GenerationParams {
	params := futureforged.DefaultGenerationParams()
	if c.LLM.Temperature != nil {
		t := *c.LLM.Temperature
		params.Temperature = &t
	}
	if c.LLM.MaxTokens != nil {
		m := *c.LLM.MaxTokens
		params.MaxTokens = &m
	}
	return params
}

// GeneratorOptions returns the futureforged.Generator options this config implies.
func (c *Config) GeneratorOptions() []futureforged.GeneratorOption {
	opts := []futureforged.GeneratorOption{futureforged.WithGenerationParams(c.GenerationParams())}
	if c.LLM.Structured != nil {
		opts = append(opts, futureforged.WithStructuredOutput(*c.LLM.Structured))
	}
	return opts
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
