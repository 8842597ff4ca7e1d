package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pb33f/hareport/motor"
	"github.com/spf13/cobra"
)

// swapped out in tests
var copyToClipboard = clipboard.WriteAll

type reportOptions struct {
	codes     []string
	yes       bool
	search    string
	regex     bool
	fuzzy     bool
	reqHeader []string
	resHeader []string
	reqCookie []string
	resCookie []string
	page      int
	pageSize  int
	copy      bool
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report <har-file|->",
		Short: "Print a Markdown summary for every matching entry",
		Long: `Print one Markdown summary per entry whose response status falls in the
selected classes. Adding 2xx or 3xx asks for confirmation on stdin unless
--yes is given. Pinned headers and cookies are appended to every summary.`,
		Args: cobra.ExactArgs(1),
		Example: `  hareport report recording.har
  hareport report recording.har --codes 5xx --search /api/ --pin-request-header X-Request-Id
  cat recording.har | hareport report - --codes 2xx,4xx --yes --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.codes, "codes", nil, "Status classes to report, e.g. 4xx,5xx (default from config)")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Include expensive classes (2xx, 3xx) without asking")
	flags.StringVarP(&opts.search, "search", "s", "", "Only entries whose URL matches this text")
	flags.BoolVar(&opts.regex, "regex", false, "Treat --search as a regular expression")
	flags.BoolVar(&opts.fuzzy, "fuzzy", false, "Treat --search as a fuzzy pattern")
	flags.StringSliceVar(&opts.reqHeader, "pin-request-header", nil, "Request header names to pin")
	flags.StringSliceVar(&opts.resHeader, "pin-response-header", nil, "Response header names to pin")
	flags.StringSliceVar(&opts.reqCookie, "pin-request-cookie", nil, "Request cookie names to pin")
	flags.StringSliceVar(&opts.resCookie, "pin-response-cookie", nil, "Response cookie names to pin")
	flags.IntVar(&opts.page, "page", 0, "Print only this page (1-based, 0 = all)")
	flags.IntVar(&opts.pageSize, "page-size", 0, "Entries per page (default from config)")
	flags.BoolVar(&opts.copy, "copy", false, "Also copy the summaries to the clipboard")

	return cmd
}

func init() {
	rootCmd.AddCommand(newReportCmd())
}

func (o *reportOptions) searchMode() (motor.SearchMode, error) {
	switch {
	case o.regex && o.fuzzy:
		return motor.PlainText, errors.New("--regex and --fuzzy are mutually exclusive")
	case o.regex:
		return motor.Regex, nil
	case o.fuzzy:
		return motor.Fuzzy, nil
	default:
		return motor.PlainText, nil
	}
}

func runReport(cmd *cobra.Command, arg string, opts *reportOptions) error {
	logger := GetLogger()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	mode, err := opts.searchMode()
	if err != nil {
		return err
	}
	wanted, err := selectionFor(opts.codes)
	if err != nil {
		return err
	}

	src, err := sourceFor(arg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	doc, err := loadDocument(cmd, src)
	if err != nil {
		return err
	}

	// expensive classes go through the same confirmation as in the UI
	var cheap motor.CodeSelection
	var gated []motor.StatusClass
	for _, class := range wanted.Classes() {
		if class.Expensive() {
			gated = append(gated, class)
		} else {
			cheap = cheap.With(class)
		}
	}

	session := motor.NewSession(cheap)
	if err := session.Load(doc); err != nil && !motor.IsEmptyResult(err) {
		return err
	}

	var confirmer motor.Confirmer = motor.AlwaysConfirm
	if !opts.yes {
		confirmer = newPromptConfirmer(cmd.InOrStdin(), errOut)
	}
	for _, class := range gated {
		outcome := session.Toggle(class, confirmer)
		logger.Debug("class toggled", "class", class.Label(), "outcome", outcome.String())
		if outcome == motor.ToggleDeclined {
			fmt.Fprintf(errOut, "skipping %s\n", class.Label())
		}
	}

	if err := session.SetQuery(opts.search, mode); err != nil {
		return fmt.Errorf("invalid --search: %w", err)
	}

	results := session.Results()
	if len(results) == 0 {
		fmt.Fprintln(errOut, (&motor.EmptyResultError{
			TotalEntries: len(doc.Entries),
			Selection:    session.Selection(),
		}).Error())
		return nil
	}

	if opts.page > 0 {
		size := opts.pageSize
		if size <= 0 {
			size = cfg.PageSize
		}
		paginator := motor.NewPaginator(size)
		paginator.SetTotal(len(results))
		paginator.SetPage(opts.page - 1)
		results = paginator.Slice(results)
		fmt.Fprintf(errOut, "page %d/%d, %d of %d entries\n",
			paginator.Page()+1, paginator.PageCount(), len(results), paginator.Total())
	}

	var report strings.Builder
	for _, entry := range results {
		pins := session.Pins(entry)
		pinByName(pins.List(motor.RequestHeaders), opts.reqHeader, true)
		pinByName(pins.List(motor.RequestCookies), opts.reqCookie, false)
		pinByName(pins.List(motor.ResponseHeaders), opts.resHeader, true)
		pinByName(pins.List(motor.ResponseCookies), opts.resCookie, false)

		fmt.Fprintf(&report, "## Entry %d\n\n%s\n", entry.ID, pins.Markdown())
	}

	if _, err := io.WriteString(out, report.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.copy {
		if err := copyToClipboard(report.String()); err != nil {
			return fmt.Errorf("failed to copy report: %w", err)
		}
		fmt.Fprintf(errOut, "copied %d summaries to the clipboard\n", len(results))
	}
	return nil
}

// pinByName pins every item called one of names. Header names compare
// case-insensitively, cookie names exactly.
func pinByName(sel *motor.HeaderSelection, names []string, foldCase bool) {
	if sel == nil || len(names) == 0 {
		return
	}
	for _, p := range sel.Available() {
		for _, name := range names {
			if p.Name == name || (foldCase && strings.EqualFold(p.Name, name)) {
				sel.Add(p)
				break
			}
		}
	}
}

// promptConfirmer asks on out and reads a y/n answer from in. Anything but
// y or yes, including EOF, declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s. Continue? [y/N] ", prompt)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
