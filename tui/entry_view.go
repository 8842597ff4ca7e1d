package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
)

// swapped out in tests, the system clipboard is not available in CI
var writeClipboard = clipboard.WriteAll

// entryDetail is the state of the entry screen: which pin list is active and
// where the cursor sits inside it.
type entryDetail struct {
	entry  *motor.Entry
	pins   *motor.EntryPins
	list   motor.PinList
	cursor int
}

type pinItem struct {
	pin    motor.Pin
	pinned bool
}

// items lists the active pin list, pinned first in pin order, then the rest
// in capture order.
func (d *entryDetail) items() []pinItem {
	sel := d.pins.List(d.list)
	pinned := sel.Pinned()
	unselected := sel.Unselected()

	items := make([]pinItem, 0, len(pinned)+len(unselected))
	for _, p := range pinned {
		items = append(items, pinItem{pin: p, pinned: true})
	}
	for _, p := range unselected {
		items = append(items, pinItem{pin: p})
	}
	return items
}

func (d *entryDetail) clampCursor() {
	n := len(d.items())
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// toggle pins or unpins the item under the cursor and follows it to its new
// position. It reports whether the item ended up pinned.
func (d *entryDetail) toggle() (motor.Pin, bool, bool) {
	items := d.items()
	if d.cursor < 0 || d.cursor >= len(items) {
		return motor.Pin{}, false, false
	}
	target := items[d.cursor].pin
	pinned := d.pins.List(d.list).Toggle(target)

	for i, item := range d.items() {
		if item.pin == target && item.pinned == pinned {
			d.cursor = i
			break
		}
	}
	return target, pinned, true
}

func (d *entryDetail) cycle(step int) {
	n := len(motor.PinLists)
	d.list = motor.PinList((int(d.list) + step + n) % n)
	d.cursor = 0
}

// openEntry shows the entry under the table cursor.
func (m *ReportModel) openEntry() {
	entry := m.selectedEntry()
	if entry == nil {
		return
	}
	m.detail = &entryDetail{
		entry: entry,
		pins:  m.session.Pins(entry),
		list:  motor.RequestHeaders,
	}
	m.previous = m.screen
	m.screen = ScreenEntry
	m.clearNotice()
	m.layoutEntry()
	m.detailViewport.GotoTop()
}

func (m *ReportModel) closeEntry() {
	m.detail = nil
	m.screen = ScreenReport
}

func (m *ReportModel) entryPanelWidths() (int, int) {
	pinWidth := int(float64(m.width) * pinPanelWidthRatio)
	if pinWidth < minPinPanelWidth {
		pinWidth = minPinPanelWidth
	}
	contentWidth := m.width - pinWidth - 4
	if contentWidth < minURLColumnWidth {
		contentWidth = minURLColumnWidth
	}
	return pinWidth, contentWidth
}

func (m *ReportModel) entryPanelHeight() int {
	return max(m.height-4, 5)
}

// layoutEntry sizes the detail viewport and refreshes its content.
func (m *ReportModel) layoutEntry() {
	if m.detail == nil {
		return
	}
	_, contentWidth := m.entryPanelWidths()
	height := m.entryPanelHeight()

	if m.detailViewport.Width() == 0 {
		m.detailViewport = viewport.New(
			viewport.WithWidth(contentWidth),
			viewport.WithHeight(height),
		)
	} else {
		m.detailViewport.SetWidth(contentWidth)
		m.detailViewport.SetHeight(height)
	}
	m.detailViewport.SetContent(m.renderEntryContent(contentWidth))
}

func (m *ReportModel) handleEntryKeys(key string) (bool, tea.Cmd) {
	d := m.detail
	if d == nil {
		m.screen = ScreenReport
		return false, nil
	}

	switch key {
	case "esc", "backspace":
		m.closeEntry()
		return true, nil

	case "q":
		m.quitting = true
		return true, tea.Quit

	case "tab":
		d.cycle(1)
		return true, nil

	case "shift+tab":
		d.cycle(-1)
		return true, nil

	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		return true, nil

	case "down", "j":
		if d.cursor < len(d.items())-1 {
			d.cursor++
		}
		return true, nil

	case "enter", " ", "space":
		if pin, pinned, ok := d.toggle(); ok {
			verb := "unpinned"
			if pinned {
				verb = "pinned"
			}
			m.setNotice("%s %s", verb, pin.Name)
			m.layoutEntry()
		}
		return true, nil

	case "c":
		m.copySummary()
		return true, nil

	case "pgup":
		m.detailViewport.ViewUp()
		return true, nil

	case "pgdown":
		m.detailViewport.ViewDown()
		return true, nil

	case "home":
		m.detailViewport.GotoTop()
		return true, nil

	case "end":
		m.detailViewport.GotoBottom()
		return true, nil
	}
	return false, nil
}

func (m *ReportModel) copySummary() {
	if m.detail == nil {
		return
	}
	summary := m.detail.pins.Markdown()
	if err := writeClipboard(summary); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setError(fmt.Errorf("could not copy to clipboard: %w", err))
		return
	}
	m.setNotice("copied summary of entry #%d (%d fields)", m.detail.entry.ID, m.detail.pins.Record().Len())
}

func (m *ReportModel) renderEntryView() string {
	d := m.detail
	if d == nil {
		return ""
	}
	pinWidth, contentWidth := m.entryPanelWidths()
	height := m.entryPanelHeight()

	title := TitleStyle.Render(fmt.Sprintf("Entry #%d", d.entry.ID)) + " " +
		SubtitleStyle.Render(fmt.Sprintf("%s %s", formatMethod(d.entry.Request.Method), truncateString(d.entry.Request.URL, m.width-20)))

	pinPanel := FocusedPanelStyle.Width(pinWidth).Height(height).Render(m.renderPinPanel(pinWidth-2, height))
	contentPanel := PanelStyle.Width(contentWidth + 2).Height(height).Render(m.detailViewport.View())

	var builder strings.Builder
	builder.WriteString(title)
	builder.WriteString("\n")
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pinPanel, contentPanel))
	builder.WriteString("\n")
	builder.WriteString(m.renderNotice())
	builder.WriteString("\n")
	builder.WriteString(HelpStyle.Render("Tab: Next list | ↑/↓: Move | Enter: Pin | c: Copy summary | PgUp/PgDn: Scroll | Esc: Back"))
	return builder.String()
}

func (m *ReportModel) renderPinPanel(width, height int) string {
	d := m.detail

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(fmt.Sprintf("Pins (%d)", d.pins.Count())))
	content.WriteString("\n")

	for _, list := range motor.PinLists {
		label := fmt.Sprintf("%s (%d/%d)", list, d.pins.List(list).Len(), len(d.pins.List(list).Available()))
		if list == d.list {
			content.WriteString(SelectedStyle.Render("> " + label))
		} else {
			content.WriteString(SubtitleStyle.Render("  " + label))
		}
		content.WriteString("\n")
	}
	content.WriteString("\n")

	items := d.items()
	if len(items) == 0 {
		content.WriteString(SubtitleStyle.Render("  nothing captured"))
		return content.String()
	}

	// keep the cursor in the visible window
	visible := max(height-len(motor.PinLists)-3, 1)
	offset := 0
	if d.cursor >= visible {
		offset = d.cursor - visible + 1
	}

	valueWidth := min(maxPinValueLength, max(width-8, 10))
	for i := offset; i < len(items) && i < offset+visible; i++ {
		item := items[i]
		checkbox := "[ ]"
		if item.pinned {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s", checkbox, truncateString(item.pin.String(), valueWidth))
		if i == d.cursor {
			line = SelectedStyle.Render(line)
		} else if item.pinned {
			line = lipgloss.NewStyle().Foreground(RGBPink).Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	return strings.TrimRight(content.String(), "\n")
}

// renderEntryContent is the scrollable side: the summary preview, then the
// request and response.
func (m *ReportModel) renderEntryContent(width int) string {
	d := m.detail

	var content strings.Builder
	content.WriteString(renderSectionHeader("Summary", width))
	content.WriteString("\n")
	for _, line := range strings.SplitAfter(d.pins.Markdown(), motor.MarkdownSeparator) {
		if line == "" {
			continue
		}
		content.WriteString(HighlightSummaryLine(strings.TrimSuffix(line, motor.MarkdownSeparator)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	marks := pinMarksOf(d.pins)
	sections := buildRequestSections(&d.entry.Request, marks)
	sections = append(sections, buildResponseSections(&d.entry.Response, &d.entry.Timings, marks)...)

	content.WriteString(renderSections(sections, RenderOptions{Width: width}))
	return content.String()
}
