package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

func createSearchInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Filter by URL..."
	input.CharLimit = 200
	return input
}

// openSearch shows the URL search panel, seeded with the active query.
func (m *ReportModel) openSearch() tea.Cmd {
	if !m.session.Loaded() {
		return nil
	}
	m.searching = true
	m.searchInput.SetValue(m.session.Query())
	m.resize()
	return m.searchInput.Focus()
}

func (m *ReportModel) closeSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.resize()
}

// handleSearchKeys handles the keys the search panel reserves; everything
// else is typed into the input.
func (m *ReportModel) handleSearchKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "esc":
		m.searchInput.SetValue("")
		m.applySearch()
		m.closeSearch()
		return true, nil

	case "enter":
		m.applySearch()
		m.closeSearch()
		return true, nil

	case "ctrl+r":
		m.searchMode = m.searchMode.Next()
		m.applySearch()
		return true, nil

	case "up":
		m.table.MoveUp(1)
		return true, nil

	case "down":
		m.table.MoveDown(1)
		return true, nil
	}
	return false, nil
}

// applySearch installs the input value as the session query. A bad pattern
// leaves the previous results in place and shows the error.
func (m *ReportModel) applySearch() {
	query := strings.TrimSpace(m.searchInput.Value())
	if err := m.session.SetQuery(query, m.searchMode); err != nil {
		m.setError(fmt.Errorf("invalid %s pattern: %w", m.searchMode, err))
		return
	}

	m.clearNotice()
	m.paginator.SetPage(0)
	m.table.SetCursor(0)
	m.refreshTable()
}

func (m *ReportModel) renderSearchPanel() string {
	searchStyle := lipgloss.NewStyle().
		Width(m.width - 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	modeStyle := lipgloss.NewStyle().
		Background(RGBSubtlePink).
		Foreground(RGBPink).
		Bold(true)

	var content strings.Builder
	content.WriteString(labelStyle.Render("Search: "))
	content.WriteString(m.searchInput.View())
	content.WriteString(" ")
	content.WriteString(modeStyle.Render(fmt.Sprintf("[%s]", m.searchMode)))

	if m.session.Query() != "" {
		countStyle := lipgloss.NewStyle().Foreground(RGBPink)
		content.WriteString(countStyle.Render(fmt.Sprintf(" (%d matches)", len(m.session.Results()))))
	}

	return searchStyle.Render(content.String())
}
