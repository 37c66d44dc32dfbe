package futureforged

import (
	_ "embed"
	"strings"
	"text/template"
)

// SystemPrompt is the counselor persona sent as the provider's system instruction.
const SystemPrompt = "You are an expert academic and career counselor AI named 'FutureForged'."

//go:embed prompts/roadmap.tmpl
var roadmapPromptRaw string

// roadmapTemplate is parsed once at init and reused on every request.
var roadmapTemplate = template.Must(template.New("roadmap").Parse(roadmapPromptRaw))

type promptData struct {
	Name        string
	Category    string
	YearOrGrade string
	Goals       string
	Structured  bool
}

// BuildPrompt renders the roadmap instruction for a profile. When structured is
// false the prompt also spells out the expected JSON shape, since the provider
// will not enforce it.
func BuildPrompt(category StudentCategory, profile StudentProfile, structured bool) (string, error) {
	var sb strings.Builder
	err := roadmapTemplate.Execute(&sb, promptData{
		Name:        strings.TrimSpace(profile.Name),
		Category:    category.Label(),
		YearOrGrade: strings.TrimSpace(profile.YearOrGrade),
		Goals:       strings.TrimSpace(profile.Goals),
		Structured:  structured,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
