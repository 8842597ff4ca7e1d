package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
)

// toggleClass flips a status class. With confirmation enabled an expensive
// class opens the confirm modal instead of being added.
func (m *ReportModel) toggleClass(class motor.StatusClass) {
	if !m.session.Loaded() {
		return
	}

	var outcome motor.ToggleOutcome
	if m.confirmExpensive {
		outcome = m.session.RequestToggle(class)
	} else {
		outcome = m.session.Toggle(class, motor.AlwaysConfirm)
	}
	m.afterToggle(class, outcome)
}

func (m *ReportModel) afterToggle(class motor.StatusClass, outcome motor.ToggleOutcome) {
	m.logger.Debug("class toggled", "class", class.Label(), "outcome", outcome.String())

	switch outcome {
	case motor.ToggleAdded:
		m.setNotice("showing %s (%s)", class.Label(), class.Name())
	case motor.ToggleRemoved:
		m.setNotice("hiding %s (%s)", class.Label(), class.Name())
	case motor.ToggleDeclined:
		m.setNotice("kept selection %s", m.session.Selection())
		return
	default:
		return
	}

	m.paginator.SetPage(0)
	m.table.SetCursor(0)
	m.refreshTable()
}

// handleConfirmKeys answers the expensive class prompt while it is open.
func (m *ReportModel) handleConfirmKeys(key string) (bool, tea.Cmd) {
	class, pending := m.session.SelectionState().Pending()
	if !pending {
		return false, nil
	}

	switch key {
	case "y", "Y", "enter":
		m.afterToggle(class, m.session.ResolveToggle(true))
	case "n", "N", "esc":
		m.afterToggle(class, m.session.ResolveToggle(false))
	case "q":
		m.session.CancelToggle()
		m.quitting = true
		return true, tea.Quit
	}

	// the modal swallows everything else
	return true, nil
}

func (m *ReportModel) renderConfirmModal() string {
	class, _ := m.session.SelectionState().Pending()

	modalStyle := lipgloss.NewStyle().
		Width(50).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	var content strings.Builder
	content.WriteString(titleStyle.Render(fmt.Sprintf("Show %s responses?", class.Label())))
	content.WriteString("\n\n")
	content.WriteString(motor.ExpensiveClassPrompt)
	content.WriteString("\n\n")
	if doc := m.session.Document(); doc != nil {
		content.WriteString(fmt.Sprintf("%d entries in this document are %s.", doc.Counts()[class], class.Name()))
		content.WriteString("\n\n")
	}
	content.WriteString(HelpStyle.Render("y/Enter: Show | n/Esc: Cancel"))

	return modalStyle.Render(content.String())
}
