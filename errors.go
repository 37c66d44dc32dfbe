package futureforged

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is a classification of provider adapter error type.
type Kind string

const (
	InvalidInput Kind = "invalid_input"
	Transport    Kind = "transport"
	StatusCode   Kind = "status_code"
	Unsupported  Kind = "unsupported"
	Invariant    Kind = "invariant"
	Refusal      Kind = "refusal"
)

// LanguageModelError represents errors from the provider adapter layer.
type LanguageModelError struct {
	Kind    Kind
	Message string
	Err     error
	// The provider name
	Provider string
	// The status for the StatusCode error kind
	Status int
}

func (e *LanguageModelError) Error() string {
	switch e.Kind {
	case InvalidInput:
		return fmt.Sprintf("invalid input: %s", e.Message)
	case Transport:
		return fmt.Sprintf("transport error: %s", e.Err)
	case StatusCode:
		return fmt.Sprintf("status error: %s (status %d)", e.Message, e.Status)
	case Unsupported:
		return fmt.Sprintf("unsupported by %s: %s", e.Provider, e.Message)
	case Invariant:
		return fmt.Sprintf("invariant from %s: %s", e.Provider, e.Message)
	case Refusal:
		return fmt.Sprintf("refusal: %s", e.Message)
	default:
		return e.Message
	}
}

// Unwrap allows errors.Is / errors.As to work with wrapped errors.
func (e *LanguageModelError) Unwrap() error {
	return e.Err
}

// Helper constructors
func NewInvalidInputError(msg string) *LanguageModelError {
	return &LanguageModelError{Kind: InvalidInput, Message: msg}
}

func NewTransportError(provider string, err error) *LanguageModelError {
	return &LanguageModelError{Kind: Transport, Err: err, Provider: provider}
}

func NewStatusCodeError(provider string, status int, body string) *LanguageModelError {
	return &LanguageModelError{Kind: StatusCode, Message: body, Status: status, Provider: provider}
}

func NewUnsupportedError(provider string, msg string) *LanguageModelError {
	return &LanguageModelError{Kind: Unsupported, Message: msg, Provider: provider}
}

func NewInvariantError(provider string, msg string) *LanguageModelError {
	return &LanguageModelError{Kind: Invariant, Message: msg, Provider: provider}
}

func NewRefusalError(msg string) *LanguageModelError {
	return &LanguageModelError{Kind: Refusal, Message: msg}
}

// ErrorKind classifies the failures surfaced by GenerateRoadmap.
type ErrorKind string

const (
	ConfigurationError     ErrorKind = "configuration"
	InvalidProfile         ErrorKind = "invalid_input"
	ProviderError          ErrorKind = "provider"
	MalformedResponseError ErrorKind = "malformed_response"
)

// Reason refines an ErrorKind for logging and for callers that branch on sub-cases.
type Reason string

const (
	ReasonMissingCredential Reason = "missing_credential"
	ReasonProfile           Reason = "profile"
	ReasonInvalidCredential Reason = "invalid_credential"
	ReasonQuotaExceeded     Reason = "quota_exceeded"
	ReasonTransport         Reason = "transport"
	ReasonCanceled          Reason = "canceled"
	ReasonRefused           Reason = "refused"
	ReasonProviderFailure   Reason = "provider_failure"
	ReasonParse             Reason = "parse"
	ReasonSchema            Reason = "schema"
	ReasonEmpty             Reason = "empty"
)

const (
	msgMissingCredential = "API key is missing. Please configure the provider credential."
	msgInvalidCredential = "Invalid API key. Please check your provider API key configuration."
	msgQuotaExceeded     = "API quota exceeded. Please try again later or check your API limits."
	msgTransport         = "Could not reach the AI provider. Please check your connection and try again."
	msgCanceled          = "Roadmap generation was canceled."
	msgRefused           = "The AI provider declined to generate a roadmap. Please rephrase your goals and try again."
	msgProviderFailure   = "Failed to generate roadmap. Please try again."
	msgMalformed         = "Failed to parse AI response. Please try again."
)

// RoadmapError is the only error type GenerateRoadmap returns.
// Error returns a message suitable for showing to the student.
type RoadmapError struct {
	Kind    ErrorKind
	Reason  Reason
	Message string
	Err     error
}

func (e *RoadmapError) Error() string {
	return e.Message
}

func (e *RoadmapError) Unwrap() error {
	return e.Err
}

func NewConfigurationError() *RoadmapError {
	return &RoadmapError{Kind: ConfigurationError, Reason: ReasonMissingCredential, Message: msgMissingCredential}
}

func NewInvalidProfileError(msg string) *RoadmapError {
	return &RoadmapError{Kind: InvalidProfile, Reason: ReasonProfile, Message: msg}
}

func NewMalformedResponseError(reason Reason, err error) *RoadmapError {
	return &RoadmapError{Kind: MalformedResponseError, Reason: reason, Message: msgMalformed, Err: err}
}

func newProviderError(reason Reason, msg string, err error) *RoadmapError {
	return &RoadmapError{Kind: ProviderError, Reason: reason, Message: msg, Err: err}
}

// KindOf returns the ErrorKind of err, or "" if err is not a RoadmapError.
func KindOf(err error) ErrorKind {
	var re *RoadmapError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// ReasonOf returns the Reason of err, or "" if err is not a RoadmapError.
func ReasonOf(err error) Reason {
	var re *RoadmapError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

func IsConfigurationError(err error) bool     { return KindOf(err) == ConfigurationError }
func IsProviderError(err error) bool          { return KindOf(err) == ProviderError }
func IsMalformedResponseError(err error) bool { return KindOf(err) == MalformedResponseError }
func IsInvalidProfileError(err error) bool    { return KindOf(err) == InvalidProfile }

// ClassifyProviderError normalizes an error returned by a LanguageModel into a
// provider RoadmapError. Classified errors pass through unchanged.
func ClassifyProviderError(err error) *RoadmapError {
	var re *RoadmapError
	if errors.As(err, &re) {
		return re
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newProviderError(ReasonCanceled, msgCanceled, err)
	}

	var lmErr *LanguageModelError
	if errors.As(err, &lmErr) {
		switch lmErr.Kind {
		case Transport:
			return newProviderError(ReasonTransport, msgTransport, err)
		case Refusal:
			return newProviderError(ReasonRefused, msgRefused, err)
		case StatusCode:
			switch lmErr.Status {
			case http.StatusUnauthorized, http.StatusForbidden:
				return newProviderError(ReasonInvalidCredential, msgInvalidCredential, err)
			case http.StatusTooManyRequests:
				return newProviderError(ReasonQuotaExceeded, msgQuotaExceeded, err)
			}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case mentionsCredential(msg):
		return newProviderError(ReasonInvalidCredential, msgInvalidCredential, err)
	case mentionsQuota(msg):
		return newProviderError(ReasonQuotaExceeded, msgQuotaExceeded, err)
	}
	return newProviderError(ReasonProviderFailure, msgProviderFailure, err)
}

func mentionsCredential(msg string) bool {
	return strings.Contains(msg, "api key") || strings.Contains(msg, "api_key_invalid")
}

func mentionsQuota(msg string) bool {
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit")
}
