// Package tui is the interactive terminal front end. Each screen corresponds
// to one session state.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/render"
	"github.com/nextgen-2026/futureforged/session"
	"go.uber.org/zap"
)

const (
	fieldName = iota
	fieldYear
	fieldGoals
	fieldCount
)

const defaultWidth = 80

// roadmapMsg carries the pipeline outcome back into the update loop.
type roadmapMsg struct {
	roadmap *futureforged.Roadmap
	err     error
}

type Options struct {
	// OutputDir receives downloaded exports; empty means the working directory.
	OutputDir string
	Logger    *zap.Logger
}

type Model struct {
	ctx     context.Context
	session *session.Session
	logger  *zap.Logger
	outDir  string

	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	result  viewport.Model

	renderer *glamour.TermRenderer
	width    int
	height   int

	formErr string
	status  string
}

func New(ctx context.Context, sess *session.Session, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle

	m := Model{
		ctx:     ctx,
		session: sess,
		logger:  log,
		outDir:  opts.OutputDir,
		inputs:  newInputs(),
		spinner: s,
		result:  viewport.New(defaultWidth, 20),
		width:   defaultWidth,
	}
	m.renderer = newRenderer(defaultWidth)
	return m
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 500
		ti.Width = 60
		ti.PromptStyle = focusedStyle
		switch i {
		case fieldName:
			ti.Placeholder = "e.g. Alex Johnson"
		case fieldYear:
			ti.Placeholder = "e.g. 10th Grade or 2nd Year"
		case fieldGoals:
			ti.Placeholder = "e.g. I want to become a software engineer"
		}
		inputs[i] = ti
	}
	return inputs
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(New(ctx, sess, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case roadmapMsg:
		return m.onRoadmap(msg), nil

	case spinner.TickMsg:
		if m.session.State() != session.StateRequesting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.session.State() {
		case session.StateLanding:
			return m.updateLanding(msg)
		case session.StateFormEntry:
			return m.updateForm(msg)
		case session.StateResult:
			return m.updateResult(msg)
		case session.StateFailed:
			return m.updateFailed(msg)
		}
		return m, nil
	}

	if m.session.State() == session.StateFormEntry {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) resize(msg tea.WindowSizeMsg) Model {
	if msg.Width <= 0 || msg.Height <= 0 {
		return m
	}
	m.width, m.height = msg.Width, msg.Height
	m.result.Width = msg.Width
	m.result.Height = max(msg.Height-6, 3)
	m.renderer = newRenderer(msg.Width)
	if snap := m.session.Snapshot(); snap.Roadmap != nil {
		m.result.SetContent(m.renderRoadmap(snap.Profile, snap.Roadmap))
	}
	return m
}

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var category futureforged.StudentCategory
	switch msg.String() {
	case "1", "s":
		category = futureforged.CategorySchool
	case "2", "c":
		category = futureforged.CategoryCollege
	case "q", "esc":
		return m, tea.Quit
	default:
		return m, nil
	}

	if err := m.session.SelectCategory(category); err != nil {
		m.logger.Error("select category", zap.Error(err))
		return m, nil
	}
	m.formErr = ""
	cmd := m.focusInput(fieldName)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if err := m.session.Back(); err != nil {
			m.logger.Error("back to landing", zap.Error(err))
		}
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		cmd := m.focusInput((m.focus + 1) % fieldCount)
		return m, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.focusInput((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	case tea.KeyEnter:
		if m.focus < fieldCount-1 {
			cmd := m.focusInput(m.focus + 1)
			return m, cmd
		}
		return m.submit()
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) profile() futureforged.StudentProfile {
	return futureforged.StudentProfile{
		Name:        m.inputs[fieldName].Value(),
		YearOrGrade: m.inputs[fieldYear].Value(),
		Goals:       m.inputs[fieldGoals].Value(),
	}
}

// submit enters Requesting before returning, so the first spinner tick and
// any key presses already see the new state. Only the provider call runs in
// the command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.formErr = ""
	m.status = ""
	run, err := m.session.Begin(m.profile())
	if err != nil {
		if futureforged.IsInvalidProfileError(err) {
			m.formErr = err.Error()
		} else {
			m.logger.Error("submit profile", zap.Error(err))
		}
		return m, nil
	}

	ctx := m.ctx
	generate := func() tea.Msg {
		roadmap, err := run(ctx)
		return roadmapMsg{roadmap: roadmap, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, generate)
}

func (m Model) onRoadmap(msg roadmapMsg) Model {
	if msg.err != nil {
		return m
	}
	m.result.SetContent(m.renderRoadmap(m.session.Snapshot().Profile, msg.roadmap))
	m.result.GotoTop()
	return m
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "r":
		return m.reset(), nil
	case "d":
		m.status = m.download()
		return m, nil
	case "1", "2", "3", "4", "5":
		stars := int(key[0] - '0')
		if err := m.session.Rate(stars); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Thanks for rating your roadmap %d/5!", stars)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m Model) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "e", "esc":
		if err := m.session.Edit(); err != nil {
			m.logger.Error("edit profile", zap.Error(err))
			return m, nil
		}
		cmd := m.focusInput(m.focus)
		return m, cmd
	case "r":
		return m.reset(), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) reset() Model {
	if err := m.session.Reset(); err != nil {
		m.logger.Error("reset session", zap.Error(err))
		return m
	}
	m.inputs = newInputs()
	m.focus = fieldName
	m.formErr = ""
	m.status = ""
	m.result.SetContent("")
	return m
}

// download writes the plain-text export and returns a status line.
func (m Model) download() string {
	snap := m.session.Snapshot()
	if snap.Roadmap == nil {
		return "Nothing to download yet."
	}
	path := filepath.Join(m.outDir, render.FileName(snap.Profile.Name))
	if err := os.WriteFile(path, []byte(render.Text(snap.Profile, snap.Roadmap)), 0o644); err != nil {
		m.logger.Error("write roadmap export", zap.String("path", path), zap.Error(err))
		return fmt.Sprintf("Download failed: %v", err)
	}
	m.logger.Info("roadmap exported", zap.String("path", path))
	return "Saved " + path
}

func (m Model) renderRoadmap(profile futureforged.StudentProfile, roadmap *futureforged.Roadmap) string {
	md := render.Markdown(profile, roadmap)
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.logger.Warn("markdown render failed", zap.Error(err))
		return md
	}
	return strings.TrimRight(out, "\n")
}
