package cmd

import (
	"fmt"
	"time"

	"github.com/pb33f/hareport/hargen"
	"github.com/pb33f/hareport/motor"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	entries  int
	output   string
	statuses []int
	pool     []int
	seed     int64
	dict     string
	bodyRate float64
	domains  []string
}

// NewGenerateCommand returns the generate command. The standalone hargen
// binary runs the same command as its root.
func NewGenerateCommand(use string) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Generate synthetic HAR files with a mix of status codes",
		Long: `Generate HAR (HTTP Archive) files for demos and tests. Statuses are drawn
from a pool that covers every class plus 0, the status HAR writers record for
requests that never got a response. --statuses fixes the status of every
entry instead.`,
		Example: `  hareport generate -n 100 -o test.har
  hareport generate --statuses 200,404,0 -o scenario.har
  hareport generate --pool 500,502,503 -n 20 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.entries, "entries", "n", hargen.DefaultGenerateOptions.EntryCount, "Number of HAR entries to generate")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file path (default: hargen-{timestamp}.har)")
	flags.IntSliceVar(&opts.statuses, "statuses", nil, "Exact status of each entry, overrides --entries and --pool")
	flags.IntSliceVar(&opts.pool, "pool", nil, "Statuses to draw from (default covers every class and 0)")
	flags.Int64VarP(&opts.seed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	flags.StringVarP(&opts.dict, "dict", "d", "", "Dictionary file path (default: built-in words)")
	flags.Float64Var(&opts.bodyRate, "body-rate", hargen.DefaultGenerateOptions.BodyRate, "Share of entries carrying payload text")
	flags.StringSliceVar(&opts.domains, "domains", nil, "Hosts to draw request URLs from")

	return cmd
}

func init() {
	rootCmd.AddCommand(NewGenerateCommand("generate"))
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	out := cmd.OutOrStdout()

	output := opts.output
	if output == "" {
		output = fmt.Sprintf("hargen-%s.har", time.Now().Format("20060102-150405"))
	}

	genOpts := hargen.GenerateOptions{
		EntryCount:     opts.entries,
		StatusPool:     opts.pool,
		Statuses:       opts.statuses,
		DictionaryPath: opts.dict,
		Seed:           opts.seed,
		BodyRate:       opts.bodyRate,
		Domains:        opts.domains,
	}

	fmt.Fprintf(out, "Generating HAR file with %d entries...\n", entryTotal(genOpts))

	written, err := hargen.GenerateToFile(output, genOpts)
	if err != nil {
		return fmt.Errorf("failed to generate HAR: %w", err)
	}
	GetLogger().Debug("generated HAR", "path", output, "entries", written, "seed", opts.seed)

	fmt.Fprintf(out, "\n✓ Generated HAR file: %s\n", output)
	fmt.Fprintf(out, "  Total entries: %d\n", written)

	// read it back through the same parser the report uses
	doc, err := loadDocument(cmd, motor.FileSource{Path: output})
	if err != nil {
		return err
	}
	counts := doc.Counts()
	for _, class := range motor.AllClasses {
		fmt.Fprintf(out, "  %s: %d\n", class.Label(), counts[class])
	}
	fmt.Fprintf(out, "  aborted: %d\n", counts[motor.StatusUnclassified])
	return nil
}

func entryTotal(opts hargen.GenerateOptions) int {
	if len(opts.Statuses) > 0 {
		return len(opts.Statuses)
	}
	return opts.EntryCount
}
