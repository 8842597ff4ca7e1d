package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/hareport/motor"
	"github.com/pb33f/hareport/tui"
)

func tuiOptions(selection motor.CodeSelection, cache motor.Cache) tui.Options {
	opts := tui.DefaultOptions()
	opts.Selection = selection
	opts.PageSize = cfg.PageSize
	opts.ConfirmExpensive = cfg.ConfirmExpensive
	opts.Cache = cache
	opts.Logger = GetLogger()
	return opts
}

// LaunchTUI runs the report UI until the user quits. A nil source opens the
// paste panel.
func LaunchTUI(src motor.Source, opts tui.Options) error {
	model := tui.NewReportModel(src, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := finalModel.(*tui.ReportModel); ok && m.Session().Loaded() {
		GetLogger().Debug("report closed",
			"selection", m.Session().Selection().String(),
			"visible", len(m.Session().Results()),
			"dismissed", m.Session().Dismissed())
	}
	return nil
}
