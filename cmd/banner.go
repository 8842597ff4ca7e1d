package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/hareport/motor"
	"github.com/pb33f/hareport/tui"
)

var bannerLines = []string{
	"@@@@@@@   @@@@@@@   @@@@@@   @@@@@@   @@@@@@@@",
	"@@@@@@@@  @@@@@@@@  @@@@@@@  @@@@@@@  @@@@@@@@",
	"@@!  @@@  @@!  @@@      @@@      @@@  @@!     ",
	"!@!  @!@  !@   @!@      @!@      @!@  !@!     ",
	"@!@@!@!   @!@!@!@   @!@!!@   @!@!!@   @!!!:!  ",
	"!!@!!!    !!!@!!!!  !!@!@!   !!@!@!   !!!!!:  ",
	"!!:       !!:  !!!      !!:      !!:  !!:     ",
	":!:       :!:  !:!      :!:      :!:  :!:     ",
	" ::        :: ::::  :: ::::  :: ::::   ::     ",
	" :        :: : ::    : : :    : : :    :      ",
}

// RenderBanner returns the pb33f banner, shaded top to bottom through the
// status class colours from informational to server error.
func RenderBanner() string {
	var result strings.Builder
	for i, line := range bannerLines {
		class := motor.AllClasses[i*len(motor.AllClasses)/len(bannerLines)]
		result.WriteString(tui.ClassStyle(class).Bold(true).Render(line))
		result.WriteString("\n")
	}

	subtitle := lipgloss.NewStyle().
		Foreground(tui.RGBPink).
		Italic(true).
		Render("hareport - surface the failures in a HAR capture")

	return lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1).
		Render(result.String() + subtitle)
}
