package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
)

type loadedMsg struct {
	result   motor.LoadResult
	duration time.Duration
}

// startLoad issues a new ticket and parses src in a command. Any load still
// in flight becomes stale.
func (m *ReportModel) startLoad(src motor.Source) tea.Cmd {
	ticket := m.loader.Begin()
	m.loadTicket = ticket
	m.source = src.Describe()
	m.previous = m.screen
	m.screen = ScreenLoading
	m.err = nil

	loader := m.loader
	load := func() tea.Msg {
		start := time.Now()
		result := loader.Load(context.Background(), ticket, src)
		return loadedMsg{result: result, duration: time.Since(start)}
	}
	return tea.Batch(m.spinner.Tick, load)
}

func (m *ReportModel) handleLoaded(msg loadedMsg) tea.Cmd {
	if !m.loader.IsCurrent(msg.result.Ticket) {
		m.logger.Debug("dropping stale load result", "source", msg.result.Source)
		return nil
	}

	if msg.result.Err != nil {
		m.failLoad(msg.result.Err)
		return nil
	}

	m.loadTime = msg.duration
	m.paginator.SetPage(0)
	m.clearNotice()

	// a new document never inherits search text
	m.searchInput.SetValue("")
	m.searching = false
	m.detail = nil

	if err := m.session.Load(msg.result.Document); err != nil {
		if motor.IsEmptyResult(err) {
			m.setNotice("%v", err)
		} else {
			m.failLoad(err)
			return nil
		}
	}

	m.screen = ScreenReport
	m.refreshTable()
	return nil
}

// failLoad shows err and drops the previous document, so no stale entries
// come back after the error screen.
func (m *ReportModel) failLoad(err error) {
	m.logger.Debug("load failed", "source", m.source, "error", err)
	m.session.Clear()
	m.paginator.SetPage(0)
	m.refreshTable()
	m.detail = nil
	m.searching = false
	m.err = err
	m.screen = ScreenError
}

func (m *ReportModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	fileInfoStyle := lipgloss.NewStyle().
		Foreground(RGBGrey)

	title := TitleStyle.Render("Loading HAR document")
	fileInfo := fileInfoStyle.Render(fmt.Sprintf("\n%s", m.source))

	return spinnerStyle.Render(fmt.Sprintf("%s %s%s", m.spinner.View(), title, fileInfo))
}

func (m *ReportModel) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	heading := "Error loading HAR document"
	if motor.IsParseError(m.err) {
		heading = "Could not parse HAR document"
	}

	errorMsg := fmt.Sprintf("%s\n\n%v\n\np: paste another document | q: quit", heading, m.err)
	return errorStyle.Render(errorMsg)
}

// dot spinner in the accent colour
func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
