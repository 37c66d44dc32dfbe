package tui

import (
	"fmt"
	"strings"

	"github.com/nextgen-2026/futureforged/session"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FutureForged"))
	b.WriteString("\n")

	snap := m.session.Snapshot()
	switch snap.State {
	case session.StateLanding:
		b.WriteString("Plan your future with a personalized study roadmap.\n\n")
		b.WriteString("  [1] School student\n")
		b.WriteString("  [2] College student\n")
		b.WriteString(helpStyle.Render("1/2 choose • q quit"))

	case session.StateFormEntry:
		b.WriteString(m.viewForm(snap))

	case session.StateRequesting:
		fmt.Fprintf(&b, "%s Forging Your Path...\n", m.spinner.View())

	case session.StateResult:
		b.WriteString(m.result.View())
		b.WriteString("\n")
		if snap.Rating > 0 {
			b.WriteString(starStyle.Render(strings.Repeat("★", snap.Rating) + strings.Repeat("☆", 5-snap.Rating)))
			b.WriteString("\n")
		}
		if m.status != "" {
			b.WriteString(statusStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ scroll • d download • 1-5 rate • r start over • q quit"))

	case session.StateFailed:
		msg := "Something went wrong."
		if snap.Err != nil {
			msg = snap.Err.Error()
		}
		b.WriteString(errorBanner.Render(msg))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter retry • e edit details • r start over • q quit"))
	}

	return b.String()
}

func (m Model) viewForm(snap session.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tell us about yourself (%s)\n\n", snap.Category.Label())

	labels := [fieldCount]string{"Name", "Year / Grade", "Goals"}
	for i, input := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focus {
			label = focusedStyle.Render(labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.formErr != "" {
		b.WriteString(formErrorStyle.Render(m.formErr))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab next field • enter submit • esc back"))
	return b.String()
}
