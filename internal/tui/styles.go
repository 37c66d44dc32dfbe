package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(accent)
	helpStyle    = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	errorBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1).
			MarginBottom(1)

	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)
