package futureforged_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/futureforgedtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newGenerator(t *testing.T, opts ...futureforged.GeneratorOption) (*futureforged.Generator, *futureforgedtest.MockLanguageModel) {
	t.Helper()
	model := futureforgedtest.NewMockLanguageModel()
	return futureforged.NewGenerator(model, opts...), model
}

func TestGenerateRoadmapAlexScenario(t *testing.T) {
	generator, model := newGenerator(t)
	model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))

	roadmap, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
	if err != nil {
		t.Fatalf("GenerateRoadmap returned error: %v", err)
	}

	if len(roadmap.Steps) != 1 || roadmap.Steps[0].Title != "Learn Python" {
		t.Errorf("expected exactly one step titled Learn Python, got %+v", roadmap.Steps)
	}
	if len(roadmap.WeeklySchedule) != 1 || roadmap.WeeklySchedule[0].Day != "Monday" {
		t.Errorf("expected exactly one weekly entry for Monday, got %+v", roadmap.WeeklySchedule)
	}
	if diff := cmp.Diff(futureforgedtest.AlexRoadmap(), roadmap); diff != "" {
		t.Errorf("roadmap mismatch (-want +got):\n%s", diff)
	}
	if got := model.GenerateCalls(); got != 1 {
		t.Errorf("expected exactly one provider call, got %d", got)
	}
}

func TestGenerateRoadmapPassThroughFidelity(t *testing.T) {
	want := &futureforged.Roadmap{
		MotivationalQuote: "Priya, every lab report is a step toward the OR.",
		Steps: []futureforged.RoadmapStep{
			{
				Title:       "Master Biology Fundamentals",
				Description: "Cover cell biology and genetics.",
				Duration:    "2 months",
				Resources: []futureforged.ResourceLink{
					{Title: "Khan Academy Biology", URL: "https://www.khanacademy.org/science/biology"},
					{Title: "Crash Course Biology", URL: "https://www.youtube.com/@crashcourse"},
				},
			},
			{
				Title:       "Chemistry Deep Dive",
				Description: "Organic chemistry with problem sets.",
				Duration:    "3 months",
				Resources:   []futureforged.ResourceLink{},
			},
			{
				Title:       "Volunteer at a Clinic",
				Description: "Gain patient-facing experience.",
				Duration:    "Ongoing",
				Resources: []futureforged.ResourceLink{
					{Title: "Red Cross", URL: "https://www.redcross.org/volunteer"},
				},
			},
			{
				Title:       "Entrance Exam Prep",
				Description: "Timed mock tests every week.",
				Duration:    "4 months",
				Resources:   []futureforged.ResourceLink{},
			},
		},
		WeeklySchedule: []futureforged.WeeklyScheduleEntry{
			{Day: "Monday", Tasks: []string{"Biology reading", "Flashcards"}},
			{Day: "Tuesday", Tasks: []string{"Chemistry problems"}},
			{Day: "Sunday", Tasks: []string{}},
		},
		SecurityNote: "We never store your answers.",
	}

	for _, structured := range []bool{true, false} {
		t.Run(fmt.Sprintf("structured=%v", structured), func(t *testing.T) {
			generator, model := newGenerator(t)
			model.SetStructuredOutput(structured)

			payload, err := marshalRoadmap(want)
			if err != nil {
				t.Fatal(err)
			}
			model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(payload))

			got, err := generator.GenerateRoadmap(t.Context(), futureforged.CategoryCollege, futureforged.StudentProfile{
				Name:        "Priya",
				YearOrGrade: "First year pre-med",
				Goals:       "become a surgeon",
			})
			if err != nil {
				t.Fatalf("GenerateRoadmap returned error: %v", err)
			}
			if len(got.Steps) != len(want.Steps) {
				t.Fatalf("expected %d steps, got %d", len(want.Steps), len(got.Steps))
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("roadmap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateRoadmapMissingCredential(t *testing.T) {
	generator, model := newGenerator(t)
	model.SetHasCredential(false)
	model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))

	roadmap, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
	if roadmap != nil {
		t.Errorf("expected no roadmap, got %+v", roadmap)
	}
	if !futureforged.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if got := model.GenerateCalls(); got != 0 {
		t.Errorf("expected no provider calls, got %d", got)
	}
}

func TestGenerateRoadmapNilModel(t *testing.T) {
	generator := futureforged.NewGenerator(nil)
	_, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
	if !futureforged.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateRoadmapInvalidProfile(t *testing.T) {
	tests := []struct {
		name     string
		category futureforged.StudentCategory
		mutate   func(p *futureforged.StudentProfile)
	}{
		{name: "empty name", category: futureforged.CategorySchool, mutate: func(p *futureforged.StudentProfile) { p.Name = "  " }},
		{name: "empty year", category: futureforged.CategorySchool, mutate: func(p *futureforged.StudentProfile) { p.YearOrGrade = "" }},
		{name: "empty goals", category: futureforged.CategoryCollege, mutate: func(p *futureforged.StudentProfile) { p.Goals = "\n" }},
		{name: "unknown category", category: "university", mutate: func(p *futureforged.StudentProfile) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, model := newGenerator(t)
			profile := futureforgedtest.AlexProfile()
			tt.mutate(&profile)

			roadmap, err := generator.GenerateRoadmap(t.Context(), tt.category, profile)
			if roadmap != nil {
				t.Errorf("expected no roadmap, got %+v", roadmap)
			}
			if !futureforged.IsInvalidProfileError(err) {
				t.Fatalf("expected invalid profile error, got %v", err)
			}
			if got := model.GenerateCalls(); got != 0 {
				t.Errorf("expected no provider calls, got %d", got)
			}
		})
	}
}

func TestGenerateRoadmapFencedResponse(t *testing.T) {
	plain, _ := newGenerator(t)
	plainModel := plain.Model().(*futureforgedtest.MockLanguageModel)
	plainModel.SetStructuredOutput(false)
	plainModel.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))

	unfenced, err := plain.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
	if err != nil {
		t.Fatalf("unfenced GenerateRoadmap returned error: %v", err)
	}

	fences := []string{
		"```json\n" + futureforgedtest.AlexRoadmapJSON + "\n```",
		"```\n" + futureforgedtest.AlexRoadmapJSON + "\n```",
		"  \n```JSON\n" + futureforgedtest.AlexRoadmapJSON + "\n```\n\n",
		"```json " + futureforgedtest.AlexRoadmapJSON + "```",
	}
	for i, fenced := range fences {
		t.Run(fmt.Sprintf("fence-%d", i), func(t *testing.T) {
			generator, model := newGenerator(t)
			model.SetStructuredOutput(false)
			model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(fenced))

			got, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
			if err != nil {
				t.Fatalf("GenerateRoadmap returned error: %v", err)
			}
			if diff := cmp.Diff(unfenced, got); diff != "" {
				t.Errorf("fenced roadmap differs from unfenced (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateRoadmapMalformedResponses(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		reason futureforged.Reason
	}{
		{name: "prose", text: "Sure! Here is your roadmap: step one, learn Python.", reason: futureforged.ReasonParse},
		{name: "truncated json", text: `{"motivationalQuote":"Alex","steps":[`, reason: futureforged.ReasonParse},
		{name: "empty", text: "   ", reason: futureforged.ReasonEmpty},
		{name: "missing steps", text: `{"motivationalQuote":"Alex, go!","weeklySchedule":[],"securityNote":"safe"}`, reason: futureforged.ReasonSchema},
		{name: "empty steps", text: `{"motivationalQuote":"Alex, go!","steps":[],"weeklySchedule":[],"securityNote":"safe"}`, reason: futureforged.ReasonSchema},
		{name: "missing quote", text: `{"steps":[{"title":"Learn Python","description":"","duration":"","resources":[]}]}`, reason: futureforged.ReasonSchema},
		{name: "null", text: "null", reason: futureforged.ReasonSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, model := newGenerator(t)
			model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(tt.text))

			roadmap, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
			if roadmap != nil {
				t.Errorf("expected no roadmap, got %+v", roadmap)
			}
			if !futureforged.IsMalformedResponseError(err) {
				t.Fatalf("expected malformed response error, got %v", err)
			}
			if got := futureforged.ReasonOf(err); got != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, got)
			}
			if err.Error() != "Failed to parse AI response. Please try again." {
				t.Errorf("unexpected user message %q", err.Error())
			}
		})
	}
}

func TestGenerateRoadmapProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason futureforged.Reason
	}{
		{name: "unauthorized", err: futureforged.NewStatusCodeError("mock", 401, "bad key"), reason: futureforged.ReasonInvalidCredential},
		{name: "api key message", err: futureforged.NewStatusCodeError("mock", 400, "API key not valid. Please pass a valid API key."), reason: futureforged.ReasonInvalidCredential},
		{name: "too many requests", err: futureforged.NewStatusCodeError("mock", 429, "slow down"), reason: futureforged.ReasonQuotaExceeded},
		{name: "quota message", err: errors.New("You exceeded your current quota"), reason: futureforged.ReasonQuotaExceeded},
		{name: "transport", err: futureforged.NewTransportError("mock", errors.New("dial tcp: connection refused")), reason: futureforged.ReasonTransport},
		{name: "refusal", err: futureforged.NewRefusalError("blocked"), reason: futureforged.ReasonRefused},
		{name: "server error", err: futureforged.NewStatusCodeError("mock", 500, "internal"), reason: futureforged.ReasonProviderFailure},
		{name: "canceled", err: fmt.Errorf("request failed: %w", context.Canceled), reason: futureforged.ReasonCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, model := newGenerator(t)
			model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultError(tt.err))

			roadmap, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
			if roadmap != nil {
				t.Errorf("expected no roadmap, got %+v", roadmap)
			}
			if !futureforged.IsProviderError(err) {
				t.Fatalf("expected provider error, got %v", err)
			}
			if got := futureforged.ReasonOf(err); got != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, got)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected classified error to wrap the provider error")
			}
			if got := model.GenerateCalls(); got != 1 {
				t.Errorf("expected a single attempt, got %d", got)
			}
		})
	}
}

func TestGenerateRoadmapRequestShape(t *testing.T) {
	t.Run("structured", func(t *testing.T) {
		generator, model := newGenerator(t)
		model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))

		if _, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile()); err != nil {
			t.Fatal(err)
		}

		input := model.TrackedGenerateInputs()[0]
		if input.ResponseFormat == nil || input.ResponseFormat.JSON == nil || input.ResponseFormat.JSON.Schema == nil {
			t.Fatalf("expected JSON response format with schema, got %+v", input.ResponseFormat)
		}
		if diff := cmp.Diff(futureforged.RoadmapSchema(), *input.ResponseFormat.JSON.Schema); diff != "" {
			t.Errorf("schema mismatch (-want +got):\n%s", diff)
		}
		for _, fragment := range []string{"Alex Johnson", "School Student", "10th Grade", "become a software engineer", "schema provided"} {
			if !strings.Contains(input.Prompt, fragment) {
				t.Errorf("prompt is missing %q", fragment)
			}
		}

		if input.SystemPrompt == nil || *input.SystemPrompt != futureforged.SystemPrompt {
			t.Errorf("expected counselor system prompt, got %v", input.SystemPrompt)
		}
		if strings.Contains(input.Prompt, futureforged.SystemPrompt) {
			t.Error("persona should be sent as the system prompt, not repeated in the user prompt")
		}

		defaults := futureforged.DefaultGenerationParams()
		if diff := cmp.Diff(defaults, futureforged.GenerationParams{
			Temperature: input.Temperature,
			TopP:        input.TopP,
			TopK:        input.TopK,
			MaxTokens:   input.MaxTokens,
		}); diff != "" {
			t.Errorf("generation params mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("forced plain text", func(t *testing.T) {
		generator, model := newGenerator(t, futureforged.WithStructuredOutput(false))
		model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))

		if _, err := generator.GenerateRoadmap(t.Context(), futureforged.CategoryCollege, futureforgedtest.AlexProfile()); err != nil {
			t.Fatal(err)
		}

		input := model.TrackedGenerateInputs()[0]
		if input.ResponseFormat == nil || input.ResponseFormat.Text == nil {
			t.Fatalf("expected text response format, got %+v", input.ResponseFormat)
		}
		if !strings.Contains(input.Prompt, "no markdown, no code blocks") {
			t.Error("expected inline JSON shape instructions in plain-text prompt")
		}
		if !strings.Contains(input.Prompt, "College Student") {
			t.Error("expected category argument to take precedence over profile category")
		}
	})
}

func TestGenerateRoadmapConcurrentCalls(t *testing.T) {
	generator, model := newGenerator(t)
	const calls = 8
	for range calls {
		model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(futureforgedtest.AlexRoadmapJSON))
	}

	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := generator.GenerateRoadmap(context.Background(), futureforged.CategorySchool, futureforgedtest.AlexProfile())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent GenerateRoadmap returned error: %v", err)
		}
	}
	if got := model.GenerateCalls(); got != calls {
		t.Errorf("expected %d independent provider calls, got %d", calls, got)
	}
}

func TestGenerateRoadmapLogsReasons(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	generator, model := newGenerator(t, futureforged.WithLogger(zap.New(core)))
	model.EnqueueGenerateResult(futureforgedtest.NewMockGenerateResultText(`{"motivationalQuote":"hi","steps":[]}`))

	if _, err := generator.GenerateRoadmap(t.Context(), futureforged.CategorySchool, futureforgedtest.AlexProfile()); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("malformed roadmap response").All()
	if len(entries) != 1 {
		t.Fatalf("expected one malformed log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["reason"]; got != string(futureforged.ReasonSchema) {
		t.Errorf("expected schema reason to be logged, got %v", got)
	}
}

func TestParseRoadmapNormalizesNullCollections(t *testing.T) {
	roadmap, err := futureforged.ParseRoadmap(`{"motivationalQuote":"Go!","steps":[{"title":"A","description":"B","duration":"C","resources":null}],"weeklySchedule":null,"securityNote":""}`)
	if err != nil {
		t.Fatalf("ParseRoadmap returned error: %v", err)
	}
	if roadmap.Steps[0].Resources == nil || roadmap.WeeklySchedule == nil {
		t.Errorf("expected null collections to become empty, got %+v", roadmap)
	}
	if diff := cmp.Diff(&futureforged.Roadmap{
		MotivationalQuote: "Go!",
		Steps:             []futureforged.RoadmapStep{{Title: "A", Description: "B", Duration: "C"}},
	}, roadmap, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("roadmap mismatch (-want +got):\n%s", diff)
	}
}
