package tui

const (
	// title, class bar, table header border, status bar, notice line
	tableVerticalPadding = 7
	minURLColumnWidth    = 20
	maxURLColumnWidth    = 100
	borderPadding        = 10

	idColumnWidth       = 5
	methodColumnWidth   = 8
	statusColumnWidth   = 8
	durationColumnWidth = 10

	pinPanelWidthRatio = 0.4
	minPinPanelWidth   = 30
	maxPinValueLength  = 60

	pasteEditorHeight = 12
	maxBodyDisplayLen = 5000
)
