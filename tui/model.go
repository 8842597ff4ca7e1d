package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/hareport/motor"
)

// Screen is the part of the UI that currently owns the keyboard.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenPaste
	ScreenReport
	ScreenEntry
	ScreenError
)

// Options configures a ReportModel.
type Options struct {
	Selection        motor.CodeSelection
	PageSize         int
	ConfirmExpensive bool
	Cache            motor.Cache
	Logger           *slog.Logger
}

// DefaultOptions mirrors the default configuration.
func DefaultOptions() Options {
	return Options{
		Selection:        motor.DefaultSelection,
		PageSize:         motor.DefaultPageSize,
		ConfirmExpensive: true,
	}
}

// ReportModel is the bubbletea model of the error report.
type ReportModel struct {
	session   *motor.Session
	loader    *motor.Loader
	paginator *motor.Paginator
	logger    *slog.Logger

	confirmExpensive bool

	table       table.Model
	columns     []table.Column
	rows        []table.Row
	pageEntries []*motor.Entry

	screen   Screen
	previous Screen
	width    int
	height   int
	ready    bool
	quitting bool

	initial    motor.Source
	source     string
	loadTicket motor.Ticket
	loadTime   time.Duration
	spinner    spinner.Model

	pasteInput  textarea.Model
	searchInput textinput.Model
	searching   bool
	searchMode  motor.SearchMode

	detail         *entryDetail
	detailViewport viewport.Model

	notice    string
	noticeErr bool
	err       error
}

// NewReportModel creates the model. With a nil source the paste panel opens
// first.
func NewReportModel(src motor.Source, opts Options) *ReportModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	columns := []table.Column{
		{Title: "#", Width: idColumnWidth},
		{Title: "Method", Width: methodColumnWidth},
		{Title: "URL", Width: maxURLColumnWidth},
		{Title: "Status", Width: statusColumnWidth},
		{Title: "Duration", Width: durationColumnWidth},
	}

	m := &ReportModel{
		session:          motor.NewSession(opts.Selection),
		loader:           motor.NewLoader(opts.Cache, logger),
		paginator:        motor.NewPaginator(opts.PageSize),
		logger:           logger,
		confirmExpensive: opts.ConfirmExpensive,
		columns:          columns,
		initial:          src,
		spinner:          createLoadingSpinner(),
		pasteInput:       createPasteInput(),
		searchInput:      createSearchInput(),
		screen:           ScreenPaste,
	}

	m.table = ApplyTableStyles(table.New(
		table.WithColumns(m.columns),
		table.WithFocused(true),
	))

	if src != nil {
		m.screen = ScreenLoading
		m.source = src.Describe()
	}
	return m
}

func (m *ReportModel) Init() tea.Cmd {
	if m.initial != nil {
		return m.startLoad(m.initial)
	}
	return m.pasteInput.Focus()
}

func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case loadedMsg:
		return m, m.handleLoaded(msg)

	case spinner.TickMsg:
		if m.screen == ScreenLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		handled, cmd := m.handleKey(msg.String())
		if handled {
			return m, cmd
		}
	}

	// unhandled messages go to the focused component
	switch {
	case m.screen == ScreenPaste:
		var cmd tea.Cmd
		m.pasteInput, cmd = m.pasteInput.Update(msg)
		cmds = append(cmds, cmd)
	case m.screen == ScreenReport && m.searching:
		var cmd tea.Cmd
		before := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.searchInput.Value() != before {
			m.applySearch()
		}
	case m.screen == ScreenReport:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	case m.screen == ScreenEntry:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes a key to the handler of the active screen.
func (m *ReportModel) handleKey(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}

	switch m.screen {
	case ScreenLoading:
		if key == "q" || key == "esc" {
			m.quitting = true
			return true, tea.Quit
		}
		return true, nil
	case ScreenError:
		return m.handleErrorKeys(key)
	case ScreenPaste:
		return m.handlePasteKeys(key)
	case ScreenEntry:
		return m.handleEntryKeys(key)
	case ScreenReport:
		if handled, cmd := m.handleConfirmKeys(key); handled {
			return true, cmd
		}
		if m.searching {
			return m.handleSearchKeys(key)
		}
		return m.handleReportKeys(key)
	}
	return false, nil
}

func (m *ReportModel) handleReportKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q":
		m.quitting = true
		return true, tea.Quit

	case "1", "2", "3", "4", "5":
		m.toggleClass(motor.StatusClass(key[0] - '0'))
		return true, nil

	case "/":
		return true, m.openSearch()

	case "p":
		return true, m.openPaste()

	case "n", "right":
		if m.paginator.Next() {
			m.refreshTable()
		}
		return true, nil

	case "b", "left":
		if m.paginator.Prev() {
			m.refreshTable()
		}
		return true, nil

	case "x", "delete":
		m.dismissSelected()
		return true, nil

	case "enter":
		m.openEntry()
		return true, nil

	case "up", "k":
		m.table.MoveUp(1)
		return true, nil

	case "down", "j":
		m.table.MoveDown(1)
		return true, nil
	}
	return false, nil
}

func (m *ReportModel) handleErrorKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q":
		m.quitting = true
		return true, tea.Quit
	case "p", "esc", "enter":
		m.err = nil
		return true, m.openPaste()
	}
	return true, nil
}

// selectedEntry returns the entry under the table cursor.
func (m *ReportModel) selectedEntry() *motor.Entry {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.pageEntries) {
		return nil
	}
	return m.pageEntries[cursor]
}

func (m *ReportModel) dismissSelected() {
	entry := m.selectedEntry()
	if entry == nil {
		return
	}
	if m.session.Dismiss(entry.ID) {
		m.setNotice("dismissed entry #%d", entry.ID)
		m.refreshTable()
	}
}

func (m *ReportModel) resize() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)
	m.adjustColumnWidths()
	m.pasteInput.SetWidth(max(m.width-4, 20))
	if m.detail != nil {
		m.layoutEntry()
	}
}

func (m *ReportModel) tableHeight() int {
	h := m.height - tableVerticalPadding
	if m.searching {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *ReportModel) adjustColumnWidths() {
	urlWidth := m.width - idColumnWidth - methodColumnWidth - statusColumnWidth - durationColumnWidth - borderPadding
	if urlWidth < minURLColumnWidth {
		urlWidth = minURLColumnWidth
	}
	if urlWidth > maxURLColumnWidth {
		urlWidth = maxURLColumnWidth
	}
	m.columns[2].Width = urlWidth
	m.table.SetColumns(m.columns)
}

// Session exposes the underlying session.
func (m *ReportModel) Session() *motor.Session {
	return m.session
}

// Screen returns the active screen.
func (m *ReportModel) Screen() Screen {
	return m.screen
}
