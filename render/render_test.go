package render_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/futureforgedtest"
	"github.com/nextgen-2026/futureforged/render"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alex Johnson", "Alex_Johnson_Roadmap.txt"},
		{"  Mary   Ann\tLee ", "Mary_Ann_Lee_Roadmap.txt"},
		{"Priya", "Priya_Roadmap.txt"},
		{"", "Student_Roadmap.txt"},
		{"../escaped", "_escaped_Roadmap.txt"},
		{"a/b", "a_b_Roadmap.txt"},
		{`..\windows\x`, "_windows_x_Roadmap.txt"},
		{"...", "Student_Roadmap.txt"},
		{"Jo: <the> \"best\"?", "Jo___the___best__Roadmap.txt"},
	}
	for _, tt := range tests {
		if got := render.FileName(tt.in); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got := render.FileName(tt.in); filepath.Base(got) != got {
			t.Errorf("FileName(%q) = %q is not a single path element", tt.in, got)
		}
	}
}

func TestText(t *testing.T) {
	roadmap := futureforgedtest.AlexRoadmap()
	roadmap.Steps[0].Resources = []futureforged.ResourceLink{
		{Title: "Python.org Tutorial", URL: "https://docs.python.org/3/tutorial/"},
	}
	roadmap.WeeklySchedule[0].Tasks = []string{"Study 1hr", "Practice"}

	got := render.Text(futureforgedtest.AlexProfile(), roadmap)

	want := `FUTURE FORGED ROADMAP for Alex Johnson
----------------------------------------
"Alex, your future starts now!"

GOALS: become a software engineer

--- YOUR ROADMAP ---

STEP 1: Learn Python
Duration: 1 month
Description: ...

Resources:
- Python.org Tutorial: https://docs.python.org/3/tutorial/

--- WEEKLY SCHEDULE ---

Monday: Study 1hr, Practice

--- NOTE ---
Your data is safe.
`
	if got != want {
		t.Errorf("unexpected text export:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdown(t *testing.T) {
	roadmap := futureforgedtest.AlexRoadmap()
	roadmap.Steps[0].Resources = []futureforged.ResourceLink{{Title: "Docs [official]", URL: "https://go.dev"}}

	got := render.Markdown(futureforgedtest.AlexProfile(), roadmap)
	for _, want := range []string{
		"# Roadmap for Alex Johnson",
		"> Alex, your future starts now!",
		"### 1. Learn Python",
		`- [Docs \[official\]](https://go.dev)`,
		"| Monday | Study 1hr |",
		"Your data is safe.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}
