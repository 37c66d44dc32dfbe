package futureforged

import "context"

type ProviderName string

// Capabilities describes what a provider adapter can enforce on its side.
type Capabilities struct {
	// StructuredOutput reports that the provider can constrain its output to a JSON schema.
	StructuredOutput bool
}

// LanguageModel is the provider adapter the roadmap pipeline talks to.
// Implementations perform exactly one outbound request per Generate call.
type LanguageModel interface {
	Provider() ProviderName
	ModelID() string
	// HasCredential reports whether a provider credential is configured.
	// It must not perform any network call.
	HasCredential() bool
	Capabilities() Capabilities
	Generate(ctx context.Context, input *LanguageModelInput) (*ModelResponse, error)
}
