package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/calyptra/rexcraft/internal/export"
	"github.com/calyptra/rexcraft/internal/messages"
	"github.com/calyptra/rexcraft/internal/models"
	"github.com/calyptra/rexcraft/internal/recipe"
	"github.com/calyptra/rexcraft/internal/utils"
	"github.com/calyptra/rexcraft/ui/ops"
	"github.com/calyptra/rexcraft/ui/tester"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	OpsPanel FocusedPanel = iota
	TesterPanel
)

// Styling for the preview and status areas
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	previewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	previewOkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	previewErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

// AppModel represents the main application model
type AppModel struct {
	// Components
	opsPanel    *ops.Model
	testerPanel *tester.Model

	// Core state
	pattern  models.Pattern
	exporter *export.Service
	savePath string

	// UI state
	focused  FocusedPanel
	width    int
	height   int
	status   string
	quitting bool
}

// NewAppModel creates a new application model, optionally pre-loaded with
// recipe lines. savePath is where 's' writes the recipe back to.
func NewAppModel(lines []string, savePath string, fs afero.Fs) *AppModel {
	opsPanel := ops.NewModel(lines)
	opsPanel.Focus()

	if savePath == "" {
		savePath = "pattern.rex"
	}

	m := &AppModel{
		opsPanel:    opsPanel,
		testerPanel: tester.NewModel(),
		exporter:    export.NewService(fs),
		savePath:    savePath,
		focused:     OpsPanel,
		width:       80,
		height:      24,
		status:      "Ready",
	}
	return m
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.rebuildPattern(m.opsPanel.Lines())
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		return m, nil

	case messages.OpsChangedMsg:
		return m, m.rebuildPattern(msg.Lines)

	case messages.PatternChangedMsg:
		// Always reaches the tester, whichever panel holds focus
		var cmd tea.Cmd
		m.testerPanel, cmd = m.testerPanel.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			// q quits only while no panel is capturing text input
			if !m.editing() {
				m.quitting = true
				return m, tea.Quit
			}

		case "tab":
			if !m.editing() {
				m.nextPanel()
				return m, nil
			}

		case "s":
			if !m.editing() {
				m.saveRecipe()
				return m, nil
			}
		}
	}

	// Route everything else to the focused panel
	var cmd tea.Cmd
	switch m.focused {
	case OpsPanel:
		m.opsPanel, cmd = m.opsPanel.Update(msg)
	case TesterPanel:
		m.testerPanel, cmd = m.testerPanel.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Thanks for using rexcraft!\n"
	}

	header := titleStyle.Render("rexcraft - Pattern Builder")

	preview := m.renderPreview()
	status := statusStyle.Render(m.status + " • Tab: switch panel • s: save • q: quit")

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(preview) - lipgloss.Height(status)
	if contentHeight < 4 {
		contentHeight = 4
	}
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	m.opsPanel.SetSize(leftWidth, contentHeight)
	m.testerPanel.SetSize(rightWidth, contentHeight)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.opsPanel.View(),
		m.testerPanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, preview, panels, status)
}

// renderPreview shows the rendered pattern, or the error keeping it from
// rendering
func (m *AppModel) renderPreview() string {
	var body string
	if m.pattern.Valid {
		text := m.pattern.Text
		if text == "" {
			text = "(empty pattern)"
		}
		body = previewOkStyle.Render(text)
	} else {
		body = previewErrStyle.Render("✗ " + m.pattern.Error)
	}

	width := m.width - 4
	if width < 10 {
		width = 10
	}
	return previewBoxStyle.Width(width).Render(body)
}

// rebuildPattern rebuilds the sequence from recipe lines and announces the
// new pattern so the tester can retest its samples
func (m *AppModel) rebuildPattern(lines []string) tea.Cmd {
	re, err := recipe.Build(lines)
	if err != nil {
		m.pattern = models.Pattern{Valid: false, Error: err.Error()}
	} else {
		m.pattern = models.FromSequence(re, 0)
	}

	if !m.pattern.Valid {
		utils.Debug("pattern rebuild failed: %s", m.pattern.Error)
	}

	m.status = fmt.Sprintf("%d operation(s)", len(lines))

	pattern := m.pattern
	return func() tea.Msg {
		return messages.PatternChangedMsg{Pattern: pattern}
	}
}

// saveRecipe writes the current operation list back to the recipe file
func (m *AppModel) saveRecipe() {
	err := m.exporter.SaveRecipe(m.opsPanel.Lines(), export.Options{
		Path:      m.savePath,
		Overwrite: true,
		Header:    "saved by rexcraft",
	})
	if err != nil {
		utils.Error("recipe save failed: %v", err)
		m.status = "Save failed: " + err.Error()
		return
	}
	m.status = "Saved to " + m.savePath
}

func (m *AppModel) editing() bool {
	// Text input capture is approximated by focus: a focused panel in edit
	// mode consumes plain keys before they reach the app
	switch m.focused {
	case OpsPanel:
		return m.opsPanel.Editing()
	case TesterPanel:
		return m.testerPanel.Editing()
	}
	return false
}

func (m *AppModel) nextPanel() {
	switch m.focused {
	case OpsPanel:
		m.opsPanel.Blur()
		m.testerPanel.Focus()
		m.focused = TesterPanel
	case TesterPanel:
		m.testerPanel.Blur()
		m.opsPanel.Focus()
		m.focused = OpsPanel
	}
}

func (m *AppModel) resizePanels() {
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth
	contentHeight := m.height - 8
	if contentHeight < 4 {
		contentHeight = 4
	}
	m.opsPanel.SetSize(leftWidth, contentHeight)
	m.testerPanel.SetSize(rightWidth, contentHeight)
}
