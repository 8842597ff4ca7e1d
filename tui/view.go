package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/pb33f/hareport/motor"
)

func (m *ReportModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	switch m.screen {
	case ScreenLoading:
		return m.renderLoadingView()
	case ScreenError:
		return m.renderErrorView()
	case ScreenPaste:
		return m.renderPasteView()
	case ScreenEntry:
		return m.renderEntryView()
	default:
		return m.renderReportView()
	}
}

func (m *ReportModel) renderReportView() string {
	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")
	builder.WriteString(m.renderClassBar())
	builder.WriteString("\n")

	if len(m.rows) == 0 {
		builder.WriteString(m.renderEmptyTable())
	} else {
		// colour the rendered rows after the fact, the table has no per-cell styles
		builder.WriteString(ColorizeTable(m.table.View(), m.table.Cursor(), m.rows))
	}
	builder.WriteString("\n")

	if m.searching {
		builder.WriteString(m.renderSearchPanel())
		builder.WriteString("\n")
	}

	builder.WriteString(m.renderNotice())
	builder.WriteString("\n")
	builder.WriteString(m.renderStatusBar())

	view := builder.String()
	if _, pending := m.session.SelectionState().Pending(); pending {
		return m.overlay(m.renderConfirmModal())
	}
	return view
}

func (m *ReportModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).BorderForeground(RGBBlue).BorderTop(false).BorderLeft(false).BorderRight(false).BorderBottom(true)

	titleText := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("hareport: %s | ", m.source))

	doc := m.session.Document()
	if doc == nil {
		return titleStyle.Render(titleText)
	}

	info := fmt.Sprintf("(%s entries, %s", humanize.Comma(int64(len(doc.Entries))), humanize.Bytes(uint64(doc.Size)))
	if m.loadTime > 0 {
		info += fmt.Sprintf(", loaded in %v", m.loadTime.Round(time.Millisecond))
	}
	info += ")"

	return titleStyle.Render(titleText + lipgloss.NewStyle().Faint(true).Render(info))
}

// renderClassBar shows each class as a checkbox with its document count
func (m *ReportModel) renderClassBar() string {
	doc := m.session.Document()
	selection := m.session.Selection()

	var counts map[motor.StatusClass]int
	if doc != nil {
		counts = doc.Counts()
	}

	parts := make([]string, 0, len(motor.AllClasses)+1)
	for _, class := range motor.AllClasses {
		checkbox := "[ ]"
		if selection.Has(class) {
			checkbox = "[x]"
		}
		label := fmt.Sprintf("%d %s %s (%d)", uint8(class), checkbox, class.Label(), counts[class])
		if selection.Has(class) {
			label = ClassStyle(class).Bold(true).Render(label)
		} else {
			label = SubtitleStyle.Render(label)
		}
		parts = append(parts, label)
	}

	if aborted := counts[motor.StatusUnclassified]; aborted > 0 {
		parts = append(parts, SubtitleStyle.Render(fmt.Sprintf("aborted (%d)", aborted)))
	}
	return " " + strings.Join(parts, "  ")
}

func (m *ReportModel) renderEmptyTable() string {
	emptyStyle := lipgloss.NewStyle().
		Faint(true).
		Align(lipgloss.Center, lipgloss.Center).
		Width(m.width).
		Height(m.tableHeight())

	text := "No matching entries"
	if m.session.Selection().IsEmpty() {
		text = "No status classes selected, press 1-5 to add one"
	}
	return emptyStyle.Render(text)
}

func (m *ReportModel) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return ErrorStyle.Render(m.notice)
	}
	return NoticeStyle.Render(m.notice)
}

func (m *ReportModel) renderStatusBar() string {
	var parts []string

	if m.searching {
		parts = append(parts, "Enter: Apply", "Ctrl+R: Mode ("+m.searchMode.String()+")", "Esc: Close Search")
	} else {
		parts = append(parts,
			"↑/↓: Navigate",
			"Enter: Entry",
			"1-5: Classes",
			"/: Search",
			"n/b: Page",
			"x: Dismiss",
			"p: Paste",
			"q: Quit",
		)
	}

	parts = append(parts, fmt.Sprintf("Page %d/%d", m.paginator.Page()+1, m.paginator.PageCount()))
	parts = append(parts, fmt.Sprintf("%d shown of %d matching", len(m.session.Results()), m.session.Matching()))
	if q := m.session.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}

	statusStyle := lipgloss.NewStyle().Faint(true)
	return statusStyle.Render(strings.Join(parts, " | "))
}

// overlay centres a modal over the whole screen
func (m *ReportModel) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *ReportModel) setNotice(format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	m.noticeErr = false
}

func (m *ReportModel) setError(err error) {
	m.notice = err.Error()
	m.noticeErr = true
}

func (m *ReportModel) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}
