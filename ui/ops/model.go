package ops

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calyptra/rexcraft/internal/messages"
	"github.com/calyptra/rexcraft/internal/recipe"
	"github.com/calyptra/rexcraft/rex"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
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

	selectedOpStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Padding(0, 1)

	editErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Padding(0, 1)
)

// Model represents the ordered list of builder operations
type Model struct {
	// Data
	lines []string // Ordered recipe lines, one operation each

	// UI State
	cursor    int
	editMode  bool
	editInput textinput.Model
	editIndex int    // Index of line being edited (-1 for new line)
	editError string // Validation error for the line being entered

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a new operations panel, optionally pre-loaded with lines
func NewModel(lines []string) *Model {
	input := textinput.New()
	input.Placeholder = "Enter operation (e.g. literal hello)..."
	input.CharLimit = 256

	return &Model{
		lines:     append([]string(nil), lines...),
		cursor:    0,
		editMode:  false,
		editInput: input,
		editIndex: -1,
		focused:   false,
		width:     40,
		height:    20,
	}
}

// Lines returns the current ordered recipe lines
func (m *Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// Update handles messages for the operations panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle edit mode input
	if m.editMode {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				return m.confirmEdit()
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

	// Handle normal navigation
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.moveCursorUp()
		case "down", "j":
			m.moveCursorDown()
		case "a":
			m.startAddOp()
		case "e":
			if m.hasOpAtCursor() {
				m.startEditOp()
			}
		case "d", "delete":
			cmd = m.deleteOp()
			return m, cmd
		case "enter":
			if m.hasOpAtCursor() {
				m.startEditOp()
			} else {
				m.startAddOp()
			}
		}
	}

	return m, cmd
}

// View renders the operations panel
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
	title := "🧩 Operations"

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
			"a: Add",
			"e/Enter: Edit",
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

	content := m.renderOps()
	constrainedContent := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, constrainedContent, help)
}

func (m *Model) renderEditMode() string {
	title := "Edit Operation"
	if m.editIndex == -1 {
		title = "Add Operation"
	}

	header := headerStyle.
		Foreground(primaryColor).
		Render(title)

	input := editInputStyle.Render(m.editInput.View())

	parts := []string{header, input}
	if m.editError != "" {
		parts = append(parts, editErrorStyle.Render("✗ "+m.editError))
	}
	parts = append(parts, helpStyle.Render("Enter: Confirm • Esc: Cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderOps() string {
	if len(m.lines) == 0 {
		emptyMsg := "No operations"
		if m.focused {
			emptyMsg += " (press 'a' to add one)"
		}
		return lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Render(emptyMsg)
	}

	var rendered []string
	maxHeight := m.height - 4 // Account for header and help

	// Calculate visible range, keeping the cursor in view
	visibleStart := 0
	visibleEnd := len(m.lines)

	if maxHeight > 0 && len(m.lines) > maxHeight {
		if m.focused {
			if m.cursor >= maxHeight {
				visibleStart = m.cursor - maxHeight + 1
			}
			visibleEnd = visibleStart + maxHeight
			if visibleEnd > len(m.lines) {
				visibleEnd = len(m.lines)
				visibleStart = visibleEnd - maxHeight
				if visibleStart < 0 {
					visibleStart = 0
				}
			}
		} else {
			visibleEnd = maxHeight
		}
	}

	if visibleStart > 0 {
		rendered = append(rendered, lipgloss.NewStyle().Foreground(secondaryColor).Render("↑ ..."))
	}

	for i := visibleStart; i < visibleEnd; i++ {
		line := fmt.Sprintf("%2d. %s", i+1, m.lines[i])
		if m.focused && i == m.cursor {
			rendered = append(rendered, selectedOpStyle.Render(line))
		} else {
			rendered = append(rendered, opStyle.Render(line))
		}
	}

	if visibleEnd < len(m.lines) {
		rendered = append(rendered, lipgloss.NewStyle().Foreground(secondaryColor).Render("↓ ..."))
	}

	return strings.Join(rendered, "\n")
}

// Internal methods

func (m *Model) hasOpAtCursor() bool {
	return m.cursor >= 0 && m.cursor < len(m.lines)
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.lines) > 0 {
		m.cursor = len(m.lines) - 1
	}
}

func (m *Model) moveCursorDown() {
	if len(m.lines) == 0 {
		m.cursor = 0
		return
	}

	if m.cursor < len(m.lines)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

func (m *Model) startAddOp() {
	m.editMode = true
	m.editIndex = -1
	m.editError = ""
	m.editInput.SetValue("")
	m.editInput.Focus()
}

func (m *Model) startEditOp() {
	if !m.hasOpAtCursor() {
		return
	}

	m.editMode = true
	m.editIndex = m.cursor
	m.editError = ""
	m.editInput.SetValue(m.lines[m.cursor])
	m.editInput.Focus()
}

func (m *Model) confirmEdit() (*Model, tea.Cmd) {
	value := strings.TrimSpace(m.editInput.Value())
	if value == "" {
		return m.cancelEdit(), nil
	}

	// Validate the single line before accepting it; sequence-level errors
	// (unbalanced groups etc.) are surfaced by the preview instead.
	if _, err := recipe.Apply(rex.New(), value); err != nil {
		m.editError = err.Error()
		return m, nil
	}

	if m.editIndex == -1 {
		m.lines = append(m.lines, value)
		m.cursor = len(m.lines) - 1
	} else {
		m.lines[m.editIndex] = value
	}

	model := m.cancelEdit()
	return model, m.emitOpsChangedCmd()
}

func (m *Model) cancelEdit() *Model {
	m.editMode = false
	m.editIndex = -1
	m.editError = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
	return m
}

func (m *Model) deleteOp() tea.Cmd {
	if !m.hasOpAtCursor() {
		return nil
	}

	m.lines = append(m.lines[:m.cursor], m.lines[m.cursor+1:]...)

	if m.cursor >= len(m.lines) && len(m.lines) > 0 {
		m.cursor = len(m.lines) - 1
	} else if len(m.lines) == 0 {
		m.cursor = 0
	}

	return m.emitOpsChangedCmd()
}

// emitOpsChangedCmd creates a command that emits the ordered recipe lines
func (m *Model) emitOpsChangedCmd() tea.Cmd {
	lines := m.Lines()
	return func() tea.Msg {
		return messages.OpsChangedMsg{
			Lines:           lines,
			SourceComponent: "ops_panel",
		}
	}
}
