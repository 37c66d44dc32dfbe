package futureforgedtest

import (
	"context"
	"errors"
	"sync"

	"github.com/nextgen-2026/futureforged"
)

// MockGenerateResult is a result for a mocked `generate` call.
// It can either be a full response or an error.
type MockGenerateResult struct {
	Response *futureforged.ModelResponse
	Error    error
}

// NewMockGenerateResultResponse constructs a generate result with a response.
func NewMockGenerateResultResponse(response futureforged.ModelResponse) MockGenerateResult {
	return MockGenerateResult{
		Response: &response,
	}
}

// NewMockGenerateResultText constructs a generate result whose response carries text.
func NewMockGenerateResultText(text string) MockGenerateResult {
	return NewMockGenerateResultResponse(futureforged.ModelResponse{Text: text})
}

// NewMockGenerateResultError constructs a generate result that yields an error.
func NewMockGenerateResultError(err error) MockGenerateResult {
	return MockGenerateResult{
		Error: err,
	}
}

// MockLanguageModel is a mock language model for testing purposes
// that tracks inputs and returns predefined outputs. It is safe for
// concurrent use.
type MockLanguageModel struct {
	mu sync.Mutex

	mockedGenerateResults []MockGenerateResult
	trackedGenerateInputs []futureforged.LanguageModelInput

	provider      futureforged.ProviderName
	modelID       string
	hasCredential bool
	capabilities  futureforged.Capabilities

	// block, when set, makes Generate wait until it is closed or ctx is done.
	block chan struct{}
}

// NewMockLanguageModel constructs a mock language model instance with a
// credential configured and structured output supported.
func NewMockLanguageModel() *MockLanguageModel {
	return &MockLanguageModel{
		mockedGenerateResults: []MockGenerateResult{},
		trackedGenerateInputs: []futureforged.LanguageModelInput{},
		provider:              "mock",
		modelID:               "mock-model",
		hasCredential:         true,
		capabilities:          futureforged.Capabilities{StructuredOutput: true},
	}
}

// Provider returns the provider name of the mock language model.
func (m *MockLanguageModel) Provider() futureforged.ProviderName {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provider
}

// SetProvider overrides the provider name returned by the mock model.
func (m *MockLanguageModel) SetProvider(provider futureforged.ProviderName) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = provider
}

// ModelID returns the model identifier of the mock language model.
func (m *MockLanguageModel) ModelID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelID
}

// SetModelID overrides the model identifier returned by the mock model.
func (m *MockLanguageModel) SetModelID(modelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelID = modelID
}

func (m *MockLanguageModel) HasCredential() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasCredential
}

// SetHasCredential toggles whether the mock reports a configured credential.
func (m *MockLanguageModel) SetHasCredential(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasCredential = ok
}

func (m *MockLanguageModel) Capabilities() futureforged.Capabilities {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capabilities
}

// SetStructuredOutput toggles the structured output capability.
func (m *MockLanguageModel) SetStructuredOutput(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilities.StructuredOutput = ok
}

// Block makes subsequent Generate calls wait until the returned release
// function is called or their context is done.
func (m *MockLanguageModel) Block() (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.block = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Generate returns the next mocked generate result, tracking the provided input.
func (m *MockLanguageModel) Generate(ctx context.Context, input *futureforged.LanguageModelInput) (*futureforged.ModelResponse, error) {
	m.mu.Lock()
	m.trackedGenerateInputs = append(m.trackedGenerateInputs, *input)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.mockedGenerateResults) == 0 {
		return nil, errors.New("no mocked generate results available")
	}

	result := m.mockedGenerateResults[0]
	m.mockedGenerateResults = m.mockedGenerateResults[1:]

	if result.Error != nil {
		return nil, result.Error
	}

	return result.Response, nil
}

// EnqueueGenerateResult enqueues generate results to be returned sequentially.
func (m *MockLanguageModel) EnqueueGenerateResult(results ...MockGenerateResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mockedGenerateResults = append(m.mockedGenerateResults, results...)
}

// TrackedGenerateInputs returns a copy of the inputs tracked from Generate calls.
func (m *MockLanguageModel) TrackedGenerateInputs() []futureforged.LanguageModelInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]futureforged.LanguageModelInput, len(m.trackedGenerateInputs))
	copy(out, m.trackedGenerateInputs)
	return out
}

// GenerateCalls returns how many times Generate has been called.
func (m *MockLanguageModel) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trackedGenerateInputs)
}

// Reset clears tracked inputs without touching enqueued results.
func (m *MockLanguageModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackedGenerateInputs = []futureforged.LanguageModelInput{}
}

// Restore clears enqueued results and tracked inputs, returning the mock to its initial state.
func (m *MockLanguageModel) Restore() {
	m.mu.Lock()
	m.mockedGenerateResults = []MockGenerateResult{}
	m.block = nil
	m.mu.Unlock()
	m.Reset()
}
