package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
)

func createPasteInput() textarea.Model {
	input := textarea.New()
	input.Placeholder = "Paste HAR JSON here..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetHeight(pasteEditorHeight)
	return input
}

// openPaste switches to the paste panel with an empty editor.
func (m *ReportModel) openPaste() tea.Cmd {
	m.previous = m.screen
	m.screen = ScreenPaste
	m.closeSearch()
	m.pasteInput.SetValue("")
	return m.pasteInput.Focus()
}

// handlePasteKeys handles submit and cancel; every other key edits the text.
func (m *ReportModel) handlePasteKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "ctrl+s", "ctrl+d":
		text := m.pasteInput.Value()
		if strings.TrimSpace(text) == "" {
			m.setNotice("nothing to load, paste a HAR document first")
			return true, nil
		}
		m.pasteInput.Blur()
		m.clearNotice()
		return true, m.startLoad(motor.TextSource(text))

	case "esc":
		if !m.session.Loaded() {
			return true, nil
		}
		m.pasteInput.Blur()
		m.screen = ScreenReport
		return true, nil
	}
	return false, nil
}

func (m *ReportModel) renderPasteView() string {
	var builder strings.Builder

	builder.WriteString(TitleStyle.Render("Paste a HAR document"))
	builder.WriteString("\n")
	builder.WriteString(SubtitleStyle.Render("Loading replaces the current report, even when the text does not parse."))
	builder.WriteString("\n\n")

	editorStyle := FocusedPanelStyle.Width(max(m.width-2, 20))
	builder.WriteString(editorStyle.Render(m.pasteInput.View()))
	builder.WriteString("\n")

	builder.WriteString(m.renderNotice())
	builder.WriteString("\n")

	help := "Ctrl+S: Load | Ctrl+C: Quit"
	if m.session.Loaded() {
		help = "Ctrl+S: Load | Esc: Back to report | Ctrl+C: Quit"
	}
	builder.WriteString(HelpStyle.Render(help))

	return lipgloss.NewStyle().Padding(0, 1).Render(builder.String())
}
