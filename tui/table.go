package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/hareport/motor"
)

// refreshTable rebuilds the rows of the current page from the session.
func (m *ReportModel) refreshTable() {
	m.pageEntries = m.paginator.Slice(m.session.Results())

	rows := make([]table.Row, 0, len(m.pageEntries))
	for _, entry := range m.pageEntries {
		rows = append(rows, formatEntryRow(entry, m.columns[2].Width))
	}
	m.rows = rows
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func formatEntryRow(entry *motor.Entry, urlWidth int) table.Row {
	return table.Row{
		strconv.Itoa(entry.ID),
		formatMethod(entry.Request.Method),
		formatURL(entry.Request.URL, urlWidth),
		formatStatus(entry.Status()),
		formatDuration(entry.Time),
	}
}

func formatMethod(method string) string {
	if method == "" {
		method = "GET"
	}
	if len(method) > 7 {
		return method[:7]
	}
	return method
}

// formatURL shows host and path, truncated to width.
func formatURL(fullURL string, width int) string {
	if fullURL == "" {
		return "/"
	}
	if width < minURLColumnWidth {
		width = minURLColumnWidth
	}

	display := fullURL
	if u, err := url.Parse(fullURL); err == nil && u.Host != "" {
		path := u.EscapedPath()
		if path == "" {
			path = "/"
		}
		display = u.Host + path
		if u.RawQuery != "" {
			display += "?" + u.RawQuery
		}
	}

	return truncateString(display, width)
}

func formatStatus(code int) string {
	if code == motor.NoResponseStatus {
		return "---"
	}
	return strconv.Itoa(code)
}

func formatDuration(durationMs float64) string {
	if durationMs <= 0 {
		return "---"
	}

	d := time.Duration(durationMs * float64(time.Millisecond))

	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", float64(d.Milliseconds())/1000.0)
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - (minutes * 60)
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
