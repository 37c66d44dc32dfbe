// Package render exports a generated roadmap as a downloadable document.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nextgen-2026/futureforged"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Separators, reserved Windows characters and control runes.
	unsafeRune = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f\x7f]`)
)

// FileName is the download name for a student's text export. The result is
// always a single path element.
func FileName(name string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	base = unsafeRune.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "Student"
	}
	return base + "_Roadmap.txt"
}

// Text renders the plain-text export.
func Text(profile futureforged.StudentProfile, roadmap *futureforged.Roadmap) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FUTURE FORGED ROADMAP for %s\n", profile.Name)
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "\"%s\"\n\n", roadmap.MotivationalQuote)
	fmt.Fprintf(&sb, "GOALS: %s\n\n", profile.Goals)
	sb.WriteString("--- YOUR ROADMAP ---\n")

	for i, step := range roadmap.Steps {
		fmt.Fprintf(&sb, "\nSTEP %d: %s\n", i+1, step.Title)
		fmt.Fprintf(&sb, "Duration: %s\n", step.Duration)
		fmt.Fprintf(&sb, "Description: %s\n", step.Description)
		sb.WriteString("\nResources:\n")
		for _, r := range step.Resources {
			fmt.Fprintf(&sb, "- %s: %s\n", r.Title, r.URL)
		}
	}

	sb.WriteString("\n--- WEEKLY SCHEDULE ---\n\n")
	for _, day := range roadmap.WeeklySchedule {
		fmt.Fprintf(&sb, "%s: %s\n", day.Day, strings.Join(day.Tasks, ", "))
	}

	sb.WriteString("\n--- NOTE ---\n")
	sb.WriteString(roadmap.SecurityNote)
	sb.WriteString("\n")

	return sb.String()
}

// Markdown renders the same content for terminal display.
func Markdown(profile futureforged.StudentProfile, roadmap *futureforged.Roadmap) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Roadmap for %s\n\n", profile.Name)
	fmt.Fprintf(&sb, "> %s\n\n", roadmap.MotivationalQuote)
	if profile.Goals != "" {
		fmt.Fprintf(&sb, "**Goals:** %s\n\n", profile.Goals)
	}

	sb.WriteString("## Your Roadmap\n")
	for i, step := range roadmap.Steps {
		fmt.Fprintf(&sb, "\n### %d. %s\n\n", i+1, step.Title)
		if step.Duration != "" {
			fmt.Fprintf(&sb, "*%s*\n\n", step.Duration)
		}
		if step.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", step.Description)
		}
		for _, r := range step.Resources {
			fmt.Fprintf(&sb, "- [%s](%s)\n", escapeLinkText(r.Title), r.URL)
		}
	}

	if len(roadmap.WeeklySchedule) > 0 {
		sb.WriteString("\n## Weekly Schedule\n\n")
		sb.WriteString("| Day | Tasks |\n|---|---|\n")
		for _, day := range roadmap.WeeklySchedule {
			fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(day.Day), escapeCell(strings.Join(day.Tasks, ", ")))
		}
	}

	if roadmap.SecurityNote != "" {
		fmt.Fprintf(&sb, "\n---\n\n%s\n", roadmap.SecurityNote)
	}

	return sb.String()
}

func escapeLinkText(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
