package tester

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calyptra/rexcraft/internal/messages"
	"github.com/calyptra/rexcraft/internal/models"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)

	editInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	selectedSampleStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	sampleStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// Model represents the sample tester panel
type Model struct {
	// Data
	pattern models.Pattern
	samples []string
	results []models.SampleResult

	// UI State
	cursor    int
	editMode  bool
	editInput textinput.Model

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a new sample tester panel
func NewModel() *Model {
	input := textinput.New()
	input.Placeholder = "Enter sample text..."
	input.CharLimit = 256

	return &Model{
		samples:   make([]string, 0),
		results:   make([]models.SampleResult, 0),
		cursor:    0,
		editMode:  false,
		editInput: input,
		focused:   false,
		width:     40,
		height:    20,
	}
}

// SetPattern installs a freshly rendered pattern and retests all samples
func (m *Model) SetPattern(pattern models.Pattern) {
	m.pattern = pattern
	m.retest()
}

// MatchCount returns how many samples the current pattern matches
func (m *Model) MatchCount() int {
	return m.pattern.MatchCount
}

// Update handles messages for the tester panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	if p, ok := msg.(messages.PatternChangedMsg); ok {
		m.SetPattern(p.Pattern)
		return m, nil
	}

	if m.editMode {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				return m.confirmEdit(), nil
			case "esc":
				return m.cancelEdit(), nil
			default:
				m.editInput, cmd = m.editInput.Update(msg)
				return m, cmd
			}
		default:
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.moveCursorUp()
		case "down", "j":
			m.moveCursorDown()
		case "a", "enter":
			m.startAddSample()
		case "d", "delete":
			m.deleteSample()
		}
	}

	return m, cmd
}

// View renders the tester panel
func (m *Model) View() string {
	if m.editMode {
		return m.renderEditMode()
	}
	return m.renderNormalMode()
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
	if m.editMode {
		m.cancelEdit()
	}
}

func (m *Model) IsFocused() bool {
	return m.focused
}

// Editing reports whether the panel is capturing text input
func (m *Model) Editing() bool {
	return m.editMode
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Rendering methods

func (m *Model) renderNormalMode() string {
	title := "🧪 Samples"
	if len(m.samples) > 0 {
		title = fmt.Sprintf("🧪 Samples (%d/%d match)", m.pattern.MatchCount, len(m.samples))
	}

	header := headerStyle.
		Foreground(primaryColor).
		Render(title)

	if m.focused {
		header = headerStyle.
			Foreground(primaryColor).
			Background(lipgloss.Color("235")).
			Render(title + " *")
	}

	help := ""
	if m.focused {
		helpItems := []string{
			"↑/↓: Navigate",
			"a/Enter: Add",
			"d: Delete",
		}
		help = helpStyle.Render(strings.Join(helpItems, " • "))
	}

	headerHeight := lipgloss.Height(header)
	helpHeight := lipgloss.Height(help)
	contentHeight := m.height - headerHeight - helpHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content := m.renderSamples()
	constrainedContent := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, constrainedContent, help)
}

func (m *Model) renderEditMode() string {
	header := headerStyle.
		Foreground(primaryColor).
		Render("Add Sample")

	input := editInputStyle.Render(m.editInput.View())

	editHelp := helpStyle.Render("Enter: Confirm • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, header, input, editHelp)
}

func (m *Model) renderSamples() string {
	if len(m.results) == 0 {
		emptyMsg := "No samples"
		if m.focused {
			emptyMsg += " (press 'a' to add one)"
		}
		return lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Render(emptyMsg)
	}

	var lines []string
	for i, result := range m.results {
		var verdictIcon string
		var verdictColor lipgloss.Color

		if result.Matched {
			verdictIcon = "✓"
			verdictColor = successColor
		} else {
			verdictIcon = "✗"
			verdictColor = errorColor
		}

		text := result.Text
		if len(text) > 30 {
			text = text[:27] + "..."
		}

		content := fmt.Sprintf("%s %s", verdictIcon, text)

		if m.focused && i == m.cursor {
			lines = append(lines, selectedSampleStyle.Render(content))
		} else {
			lines = append(lines, sampleStyle.Foreground(verdictColor).Render(content))
		}
	}

	return strings.Join(lines, "\n")
}

// Internal methods

func (m *Model) hasSampleAtCursor() bool {
	return m.cursor >= 0 && m.cursor < len(m.samples)
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.samples) > 0 {
		m.cursor = len(m.samples) - 1
	}
}

func (m *Model) moveCursorDown() {
	if len(m.samples) == 0 {
		m.cursor = 0
		return
	}

	if m.cursor < len(m.samples)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

func (m *Model) startAddSample() {
	m.editMode = true
	m.editInput.SetValue("")
	m.editInput.Focus()
}

func (m *Model) confirmEdit() *Model {
	value := m.editInput.Value()
	if value != "" {
		m.samples = append(m.samples, value)
		m.cursor = len(m.samples) - 1
		m.retest()
	}
	return m.cancelEdit()
}

func (m *Model) cancelEdit() *Model {
	m.editMode = false
	m.editInput.Blur()
	m.editInput.SetValue("")
	return m
}

func (m *Model) deleteSample() {
	if !m.hasSampleAtCursor() {
		return
	}

	m.samples = append(m.samples[:m.cursor], m.samples[m.cursor+1:]...)

	if m.cursor >= len(m.samples) && len(m.samples) > 0 {
		m.cursor = len(m.samples) - 1
	} else if len(m.samples) == 0 {
		m.cursor = 0
	}

	m.retest()
}

func (m *Model) retest() {
	m.results = m.pattern.TestSamples(m.samples)
}
