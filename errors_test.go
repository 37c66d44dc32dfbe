package futureforged_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nextgen-2026/futureforged"
)

func TestRoadmapErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind futureforged.ErrorKind
		want string
	}{
		{
			name: "configuration",
			err:  futureforged.NewConfigurationError(),
			kind: futureforged.ConfigurationError,
			want: "API key is missing. Please configure the provider credential.",
		},
		{
			name: "malformed",
			err:  futureforged.NewMalformedResponseError(futureforged.ReasonParse, errors.New("invalid character")),
			kind: futureforged.MalformedResponseError,
			want: "Failed to parse AI response. Please try again.",
		},
		{
			name: "invalid profile",
			err:  futureforged.NewInvalidProfileError("Please enter your name."),
			kind: futureforged.InvalidProfile,
			want: "Please enter your name.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := futureforged.KindOf(tt.err); got != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, got)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, got)
			}
		})
	}
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("handler: %w", futureforged.NewConfigurationError())
	if !futureforged.IsConfigurationError(err) {
		t.Errorf("expected wrapped configuration error to be detected")
	}
	if got := futureforged.KindOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty kind for plain error, got %q", got)
	}
	if got := futureforged.ReasonOf(nil); got != "" {
		t.Errorf("expected empty reason for nil error, got %q", got)
	}
}

func TestClassifyProviderErrorPassThrough(t *testing.T) {
	original := futureforged.NewMalformedResponseError(futureforged.ReasonEmpty, nil)
	if got := futureforged.ClassifyProviderError(fmt.Errorf("wrap: %w", original)); got != original {
		t.Errorf("expected already classified error to pass through, got %v", got)
	}
}

func TestClassifyProviderErrorStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		body   string
		reason futureforged.Reason
	}{
		{status: 401, body: "unauthorized", reason: futureforged.ReasonInvalidCredential},
		{status: 403, body: "forbidden", reason: futureforged.ReasonInvalidCredential},
		{status: 429, body: "too many", reason: futureforged.ReasonQuotaExceeded},
		{status: 400, body: "RESOURCE_EXHAUSTED", reason: futureforged.ReasonQuotaExceeded},
		{status: 400, body: "Rate limit reached for requests", reason: futureforged.ReasonQuotaExceeded},
		{status: 400, body: "invalid argument", reason: futureforged.ReasonProviderFailure},
		{status: 503, body: "overloaded", reason: futureforged.ReasonProviderFailure},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.status, tt.body), func(t *testing.T) {
			got := futureforged.ClassifyProviderError(futureforged.NewStatusCodeError("test", tt.status, tt.body))
			if got.Kind != futureforged.ProviderError {
				t.Errorf("expected provider kind, got %q", got.Kind)
			}
			if got.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, got.Reason)
			}
			if got.Message == "" {
				t.Error("expected a user-facing message")
			}
		})
	}
}

func TestLanguageModelErrorAs(t *testing.T) {
	err := fmt.Errorf("generate: %w", futureforged.NewStatusCodeError("openai", 500, "boom"))

	var lmErr *futureforged.LanguageModelError
	if !errors.As(err, &lmErr) {
		t.Fatal("expected errors.As to find LanguageModelError")
	}
	if lmErr.Kind != futureforged.StatusCode || lmErr.Status != 500 || lmErr.Provider != "openai" {
		t.Errorf("unexpected error fields: %+v", lmErr)
	}
}
