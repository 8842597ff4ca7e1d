package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/hareport/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportHAR = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "test", "version": "0.1"},
    "entries": [
      {"time": 12, "startedDateTime": "2024-03-01T12:00:00Z",
       "request": {"method": "GET", "url": "https://api.example.com/users", "httpVersion": "HTTP/1.1", "headers": [{"name": "Accept", "value": "application/json"}], "cookies": []},
       "response": {"status": 200, "statusText": "OK", "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 250, "startedDateTime": "2024-03-01T12:00:01Z",
       "request": {"method": "POST", "url": "https://api.example.com/orders", "httpVersion": "HTTP/1.1",
                   "headers": [{"name": "Accept", "value": "application/json"}, {"name": "X-Request-Id", "value": "req-1"}],
                   "cookies": [{"name": "session", "value": "abc"}],
                   "postData": {"mimeType": "application/json", "text": "{\"sku\":\"a-1\"}"}},
       "response": {"status": 404, "statusText": "Not Found", "headers": [{"name": "Content-Type", "value": "application/json"}], "cookies": [],
                    "content": {"size": 21, "mimeType": "application/json", "text": "{\"error\":\"not_found\"}"}}},
      {"time": 900, "startedDateTime": "2024-03-01T12:00:02Z",
       "request": {"method": "GET", "url": "https://api.example.com/health", "httpVersion": "HTTP/1.1", "headers": [], "cookies": []},
       "response": {"status": 503, "statusText": "Service Unavailable", "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 3, "startedDateTime": "2024-03-01T12:00:03Z",
       "request": {"method": "GET", "url": "https://cdn.example.com/app.js", "headers": [], "cookies": []},
       "response": {"status": 0, "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 40, "startedDateTime": "2024-03-01T12:00:04Z",
       "request": {"method": "GET", "url": "https://api.example.com/old", "httpVersion": "HTTP/1.1", "headers": [], "cookies": []},
       "response": {"status": 302, "statusText": "Found", "redirectURL": "https://api.example.com/new", "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}}
    ]
  }
}`

func testOptions() Options {
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

// loadedModel returns a sized model with reportHAR loaded synchronously.
func loadedModel(t *testing.T, opts Options) *ReportModel {
	t.Helper()
	m := NewReportModel(nil, opts)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	result := m.loader.LoadNow(context.Background(), motor.TextSource(reportHAR))
	require.NoError(t, result.Err)
	m.handleLoaded(loadedMsg{result: result})
	require.Equal(t, ScreenReport, m.Screen())
	return m
}

func rowIDs(m *ReportModel) []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r[0]
	}
	return out
}

func TestReportModel_StartsWithPaste(t *testing.T) {
	m := NewReportModel(nil, testOptions())
	assert.Equal(t, ScreenPaste, m.Screen())
	assert.False(t, m.session.Loaded())
}

func TestReportModel_StartsLoadingWithSource(t *testing.T) {
	m := NewReportModel(motor.TextSource(reportHAR), testOptions())
	assert.Equal(t, ScreenLoading, m.Screen())
	assert.Equal(t, "pasted text", m.source)
}

func TestReportModel_LoadShowsDefaultClasses(t *testing.T) {
	m := loadedModel(t, testOptions())

	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
	assert.Equal(t, "404", m.rows[0][3])
	assert.Equal(t, "503", m.rows[1][3])
	assert.Empty(t, m.notice)
}

func TestReportModel_ToggleRemovesClass(t *testing.T) {
	m := loadedModel(t, testOptions())

	handled, _ := m.handleKey("4")
	assert.True(t, handled)
	assert.Equal(t, []string{"2"}, rowIDs(m))
	assert.False(t, m.session.Selection().Has(motor.StatusClientError))

	m.handleKey("4")
	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
}

func TestReportModel_ExpensiveClassNeedsConfirmation(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("3")
	class, pending := m.session.SelectionState().Pending()
	require.True(t, pending)
	assert.Equal(t, motor.StatusRedirect, class)
	assert.Equal(t, []string{"1", "2"}, rowIDs(m), "nothing changes until answered")

	// other keys are swallowed by the prompt
	m.handleKey("x")
	assert.Equal(t, 0, m.session.Dismissed())

	m.handleKey("y")
	_, pending = m.session.SelectionState().Pending()
	assert.False(t, pending)
	assert.Equal(t, []string{"1", "2", "4"}, rowIDs(m))
}

func TestReportModel_ExpensiveClassDeclined(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("2")
	m.handleKey("n")

	assert.False(t, m.session.Selection().Has(motor.StatusSuccess))
	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
	assert.Contains(t, m.notice, "kept selection")
}

func TestReportModel_ConfirmDisabled(t *testing.T) {
	opts := testOptions()
	opts.ConfirmExpensive = false
	m := loadedModel(t, opts)

	m.handleKey("2")
	_, pending := m.session.SelectionState().Pending()
	assert.False(t, pending)
	assert.Equal(t, []string{"0", "1", "2"}, rowIDs(m))
}

func TestReportModel_Search(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("/")
	require.True(t, m.searching)

	m.searchInput.SetValue("health")
	m.applySearch()
	assert.Equal(t, []string{"2"}, rowIDs(m))

	// typing keys reach the input, not the report handlers
	handled, _ := m.handleKey("q")
	assert.False(t, handled)
	assert.False(t, m.quitting)

	m.handleKey("enter")
	assert.False(t, m.searching)
	assert.Equal(t, "health", m.session.Query())

	m.handleKey("/")
	m.handleKey("esc")
	assert.Equal(t, "", m.session.Query())
	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
}

func TestReportModel_SearchInvalidRegex(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("/")
	m.handleKey("ctrl+r")
	require.Equal(t, motor.Regex, m.searchMode)

	m.searchInput.SetValue("orders")
	m.applySearch()
	assert.Equal(t, []string{"1"}, rowIDs(m))

	m.searchInput.SetValue("orders(")
	m.applySearch()
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "invalid regex pattern")
	assert.Equal(t, []string{"1"}, rowIDs(m), "previous query stays active")
}

func TestReportModel_Dismiss(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("x")
	assert.Equal(t, []string{"2"}, rowIDs(m))
	assert.Equal(t, 1, m.session.Dismissed())
	assert.Contains(t, m.notice, "dismissed entry #1")
}

func TestReportModel_Pagination(t *testing.T) {
	opts := testOptions()
	opts.PageSize = 1
	m := loadedModel(t, opts)

	assert.Equal(t, []string{"1"}, rowIDs(m))
	m.handleKey("n")
	assert.Equal(t, []string{"2"}, rowIDs(m))
	m.handleKey("n")
	assert.Equal(t, []string{"2"}, rowIDs(m), "last page clamps")
	m.handleKey("b")
	assert.Equal(t, []string{"1"}, rowIDs(m))
}

func TestReportModel_EntryPinsAndCopy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := loadedModel(t, testOptions())

	m.handleKey("enter")
	require.Equal(t, ScreenEntry, m.Screen())
	require.NotNil(t, m.detail)
	assert.Equal(t, 1, m.detail.entry.ID)

	// second request header, X-Request-Id
	m.handleKey("down")
	m.handleKey("enter")
	pins := m.session.Pins(m.detail.entry)
	assert.Equal(t, 1, pins.Count())
	assert.Equal(t, 0, m.detail.cursor, "pinned item moves to the top")

	m.handleKey("tab")
	assert.Equal(t, motor.RequestCookies, m.detail.list)
	m.handleKey("space")
	assert.Equal(t, 2, pins.Count())

	m.handleKey("c")
	assert.Equal(t, m.session.Markdown(m.detail.entry), copied)
	assert.Contains(t, copied, "*X-Request-Id*: `req-1`  \n")
	assert.Contains(t, copied, "*session*: `abc`  \n")
	assert.True(t, strings.HasPrefix(copied, "*method*: `POST`  \n"))

	m.handleKey("esc")
	assert.Equal(t, ScreenReport, m.Screen())

	// pins survive leaving and re-entering the entry
	m.handleKey("enter")
	assert.Equal(t, 2, m.session.Pins(m.detail.entry).Count())
}

func TestReportModel_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m := loadedModel(t, testOptions())
	m.handleKey("enter")
	m.handleKey("c")

	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "no clipboard")
}

func TestReportModel_DismissDropsPins(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("enter")
	m.handleKey("enter")
	entry := m.detail.entry
	require.Equal(t, 1, m.session.Pins(entry).Count())
	m.handleKey("esc")

	m.handleKey("x")
	assert.Equal(t, 0, m.session.Pins(entry).Count())
	m.handleKey("4")
	m.handleKey("4")
	assert.Equal(t, []string{"2"}, rowIDs(m), "dismissal survives selection changes")
}

func TestReportModel_StaleLoadDropped(t *testing.T) {
	m := loadedModel(t, testOptions())

	src := motor.TextSource(reportHAR)
	stale := m.loader.Begin()
	m.startLoad(src)

	m.handleLoaded(loadedMsg{result: m.loader.Load(context.Background(), stale, src)})
	assert.Equal(t, ScreenLoading, m.Screen(), "stale result is ignored")

	m.handleLoaded(loadedMsg{result: m.loader.Load(context.Background(), m.loadTicket, src)})
	assert.Equal(t, ScreenReport, m.Screen())
}

func TestReportModel_ReloadResetsState(t *testing.T) {
	cache, err := motor.NewDocumentCache(4)
	require.NoError(t, err)
	opts := testOptions()
	opts.Cache = cache
	m := loadedModel(t, opts)
	m.handleKey("x")
	m.handleKey("/")
	m.searchInput.SetValue("health")
	m.handleKey("enter")

	result := m.loader.LoadNow(context.Background(), motor.TextSource(reportHAR))
	m.handleLoaded(loadedMsg{result: result})

	assert.True(t, result.Cached)
	assert.Equal(t, 0, m.session.Dismissed())
	assert.Equal(t, "", m.session.Query())
	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
}

func TestReportModel_ParseError(t *testing.T) {
	m := NewReportModel(nil, testOptions())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.handleLoaded(loadedMsg{result: m.loader.LoadNow(context.Background(), motor.TextSource(`{"log": {}}`))})
	require.Equal(t, ScreenError, m.Screen())
	assert.True(t, motor.IsParseError(m.err))
	assert.Contains(t, m.View(), "Could not parse HAR document")

	m.handleKey("p")
	assert.Equal(t, ScreenPaste, m.Screen())
}

func TestReportModel_FailedLoadClearsReport(t *testing.T) {
	m := loadedModel(t, testOptions())
	m.handleKey("enter")
	require.Equal(t, ScreenEntry, m.Screen())

	m.handleLoaded(loadedMsg{result: m.loader.LoadNow(context.Background(), motor.TextSource("not json"))})
	require.Equal(t, ScreenError, m.Screen())
	assert.False(t, m.session.Loaded())
	assert.Empty(t, m.session.Results())
	assert.Empty(t, m.rows)
	assert.Empty(t, m.pageEntries)
	assert.Nil(t, m.detail)

	// back out of the paste panel: there is no report to return to
	m.handleKey("p")
	require.Equal(t, ScreenPaste, m.Screen())
	m.handleKey("esc")
	assert.Equal(t, ScreenPaste, m.Screen())
	assert.Empty(t, m.rows)
}

func TestReportModel_EmptyResultIsNotice(t *testing.T) {
	opts := testOptions()
	opts.Selection = motor.NewCodeSelection(motor.StatusInformational)
	m := loadedModel(t, opts)

	assert.Empty(t, m.rows)
	assert.Contains(t, m.notice, "no entries matching 1xx")
	assert.True(t, m.session.Loaded())

	m.handleKey("4")
	assert.Equal(t, []string{"1"}, rowIDs(m))
}

func TestReportModel_PasteKeys(t *testing.T) {
	m := NewReportModel(nil, testOptions())

	handled, cmd := m.handleKey("ctrl+s")
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Contains(t, m.notice, "nothing to load")

	handled, _ = m.handleKey("esc")
	assert.True(t, handled)
	assert.Equal(t, ScreenPaste, m.Screen(), "nothing to go back to")

	handled, _ = m.handleKey("a")
	assert.False(t, handled, "text keys go to the editor")

	m.pasteInput.SetValue(reportHAR)
	handled, cmd = m.handleKey("ctrl+s")
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, ScreenLoading, m.Screen())
}

func TestReportModel_PasteBackToReport(t *testing.T) {
	m := loadedModel(t, testOptions())

	m.handleKey("p")
	require.Equal(t, ScreenPaste, m.Screen())
	m.handleKey("esc")
	assert.Equal(t, ScreenReport, m.Screen())
	assert.Equal(t, []string{"1", "2"}, rowIDs(m))
}

func TestReportModel_View(t *testing.T) {
	m := loadedModel(t, testOptions())

	view := m.View()
	assert.Contains(t, view, "hareport: pasted text")
	assert.Contains(t, view, "Page 1/1")
	assert.Contains(t, view, "2 shown of 2 matching")
	assert.Contains(t, view, "aborted (1)")

	m.handleKey("3")
	assert.Contains(t, m.View(), "Show 3xx responses?")
	m.handleKey("esc")

	m.handleKey("enter")
	entryView := m.View()
	assert.Contains(t, entryView, "Entry #1")
	assert.Contains(t, entryView, "request headers (0/2)")
	assert.Contains(t, entryView, "Summary")
	assert.Contains(t, entryView, "*method*:")
	assert.Contains(t, entryView, "`POST`")
}

func TestReportModel_Quit(t *testing.T) {
	m := loadedModel(t, testOptions())
	handled, cmd := m.handleKey("q")
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}
