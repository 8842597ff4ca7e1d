package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/pb33f/hareport/motor"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <har-file|->",
		Short: "Count the entries of a HAR file per status class",
		Long: `Print how many entries of a HAR capture fall in each status class,
including requests that never received a response.`,
		Args: cobra.ExactArgs(1),
		Example: `  hareport stats recording.har
  hareport stats recording.har -v`,
		RunE: runStats,
	}
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func runStats(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	src, err := sourceFor(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	doc, err := loadDocument(cmd, src)
	if err != nil {
		return err
	}

	// In verbose mode, log first few entries as examples
	if verbose && len(doc.Entries) > 0 {
		for _, entry := range doc.Entries[:min(3, len(doc.Entries))] {
			logger.Debug("entry",
				"index", entry.ID,
				"method", entry.Request.Method,
				"url", entry.Request.URL,
				"status", entry.Status())
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", src.Describe())
	fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(uint64(doc.Size)))
	fmt.Fprintf(out, "Entries: %s\n", humanize.Comma(int64(len(doc.Entries))))
	if doc.Creator != nil {
		fmt.Fprintf(out, "Creator: %s %s\n", doc.Creator.Name, doc.Creator.Version)
	}
	if doc.Browser != nil {
		fmt.Fprintf(out, "Browser: %s %s\n", doc.Browser.Name, doc.Browser.Version)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderStatsTable(doc))

	selection, err := cfg.Selection()
	if err == nil {
		fmt.Fprintf(out, "\n%d entries match the default selection %s\n",
			len(motor.FilterErrors(doc.Entries, selection)), selection)
	}
	return nil
}

func renderStatsTable(doc *motor.Document) string {
	counts := doc.Counts()
	total := len(doc.Entries)

	share := func(n int) string {
		if total == 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Class", "Name", "Entries", "Share")

	for _, class := range motor.AllClasses {
		n := counts[class]
		t.Row(class.Label(), class.Name(), strconv.Itoa(n), share(n))
	}
	aborted := counts[motor.StatusUnclassified]
	t.Row("---", "aborted", strconv.Itoa(aborted), share(aborted))

	return t.String()
}
