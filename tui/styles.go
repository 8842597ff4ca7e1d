package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
)

// pb33f palette
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBDarkGrey   = lipgloss.Color("240")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(RGBPink)
	SubtitleStyle = lipgloss.NewStyle().Foreground(RGBGrey)
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(RGBBlue)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(RGBPink).Background(RGBSubtlePink)
	HelpStyle     = lipgloss.NewStyle().Faint(true).Foreground(RGBGrey)

	// pin panel and entry detail borders
	PanelStyle        = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(RGBDarkGrey)
	FocusedPanelStyle = PanelStyle.BorderForeground(RGBBlue)

	// single-line feedback under the table
	NoticeStyle = lipgloss.NewStyle().Foreground(RGBBlue)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(RGBRed)
)

// Table colorization styles for methods and status classes
var (
	StyleMethodGreen  = lipgloss.NewStyle().Foreground(RGBGreen)  // GET, QUERY
	StyleMethodYellow = lipgloss.NewStyle().Foreground(RGBYellow) // PATCH
	StyleMethodBlue   = lipgloss.NewStyle().Foreground(RGBBlue)   // PUT, POST
	StyleMethodRed    = lipgloss.NewStyle().Foreground(RGBRed)    // DELETE

	StyleDurationFaint = lipgloss.NewStyle().Faint(true)
)

var classStyles = map[motor.StatusClass]lipgloss.Style{
	motor.StatusInformational: lipgloss.NewStyle().Foreground(RGBBlue),
	motor.StatusSuccess:       lipgloss.NewStyle().Foreground(RGBGreen),
	motor.StatusRedirect:      lipgloss.NewStyle().Foreground(RGBGrey),
	motor.StatusClientError:   lipgloss.NewStyle().Foreground(RGBYellow),
	motor.StatusServerError:   lipgloss.NewStyle().Foreground(RGBRed),
}

// ClassStyle returns the foreground style used for a status class.
func ClassStyle(c motor.StatusClass) lipgloss.Style {
	if s, ok := classStyles[c]; ok {
		return s
	}
	return StyleDurationFaint
}

// payload and summary highlighting
var (
	SyntaxKeyStyle     = lipgloss.NewStyle().Foreground(RGBBlue)
	SyntaxBraceStyle   = lipgloss.NewStyle().Foreground(RGBPink)
	SyntaxBracketStyle = lipgloss.NewStyle().Foreground(RGBYellow)
	SyntaxCodeStyle    = lipgloss.NewStyle().Foreground(RGBGreen)
)

// ApplyTableStyles applies the pink header and selection theme
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = TitleStyle.
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true)
	s.Selected = SelectedStyle
	s.Cell = lipgloss.NewStyle().Padding(0, 1)

	t.SetStyles(s)
	return t
}
