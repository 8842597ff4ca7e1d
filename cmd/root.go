package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pb33f/hareport/config"
	"github.com/pb33f/hareport/motor"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbose    bool
	configPath string
	rootCodes  []string
	Logger     *slog.Logger
	cfg        = config.DefaultConfig()

	// closed when the command finishes, only set for the log file
	logCloser io.Closer

	rootCmd = &cobra.Command{
		Use:   "hareport [har-file]",
		Short: "Surface failed requests in HAR captures",
		Long: `hareport reads an HTTP Archive (HAR) capture and shows the requests whose
responses fall in the selected status classes, 4xx and 5xx by default. Pick
the headers and cookies that matter for an entry and copy a Markdown summary
of it into a bug report.

Without a file the terminal UI opens a panel to paste HAR text into.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  hareport recording.har
  hareport recording.har --codes 3xx,4xx,5xx
  hareport report recording.har --pin-request-header X-Request-Id
  hareport stats recording.har -v`,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogger()
		},
		RunE: runTUI,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// assigned here rather than in the literal to avoid an initialization
	// cycle: initCommand refers to rootCmd
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd)
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/hareport/config.yaml)")
	rootCmd.Flags().StringSliceVarP(&rootCodes, "codes", "c", nil, "Status classes shown at start, e.g. 4xx,5xx (default from config)")

	// will be reconfigured in PersistentPreRunE based on flags
	setupLogger(os.Stderr)
}

// initCommand loads the configuration and points logging at the right place.
// The terminal UI owns the screen, so it logs to the configured file or
// nowhere.
func initCommand(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd == rootCmd {
		setupLogger(tuiLogWriter(cfg))
	} else {
		setupLogger(cmd.ErrOrStderr())
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	var src motor.Source
	if len(args) == 1 {
		if err := ValidateHARFile(args[0]); err != nil {
			return fmt.Errorf("invalid HAR file: %w", err)
		}
		src = motor.FileSource{Path: args[0]}
	}

	selection, err := selectionFor(rootCodes)
	if err != nil {
		return err
	}

	cache, err := newDocumentCache(cfg.CacheEntries)
	if err != nil {
		return err
	}

	if err := LaunchTUI(src, tuiOptions(selection, cache)); err != nil {
		return fmt.Errorf("failed to launch TUI: %w", err)
	}
	return nil
}

// tuiLogWriter returns the rotating log file when one is configured
func tuiLogWriter(c config.Config) io.Writer {
	if c.LogFile == "" {
		return io.Discard
	}
	lj := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
	}
	logCloser = lj
	return lj
}

func closeLogger() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// setupLogger points the global slog logger at w. --verbose lowers the
// level to debug and adds source locations.
func setupLogger(w io.Writer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)

	Logger.Debug("verbose logging enabled", "pid", os.Getpid())
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger(os.Stderr)
	}
	return Logger
}

// ValidateHARFile checks that harFile names an existing regular file.
func ValidateHARFile(harFile string) error {
	if harFile == "" {
		return errors.New("HAR file path is required")
	}

	info, err := os.Stat(harFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("HAR file does not exist: %s", harFile)
	case err != nil:
		return fmt.Errorf("error accessing HAR file: %w", err)
	case info.IsDir():
		return fmt.Errorf("provided path is a directory, not a file: %s", harFile)
	}
	return nil
}

// sourceFor maps a command argument to a document source, "-" being stdin.
func sourceFor(arg string, stdin io.Reader) (motor.Source, error) {
	if arg == "-" {
		return motor.ReaderSource{Reader: stdin}, nil
	}
	if err := ValidateHARFile(arg); err != nil {
		return nil, err
	}
	return motor.FileSource{Path: arg}, nil
}

// selectionFor parses --codes, falling back to the configured classes.
func selectionFor(codes []string) (motor.CodeSelection, error) {
	if len(codes) == 0 {
		return cfg.Selection()
	}
	selection, err := motor.ParseCodeSelection(codes)
	if err != nil {
		return 0, fmt.Errorf("invalid --codes: %w", err)
	}
	return selection, nil
}

func newDocumentCache(size int) (motor.Cache, error) {
	if size == 0 {
		return motor.NewNoOpCache(), nil
	}
	cache, err := motor.NewDocumentCache(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}
	return cache, nil
}

// loadDocument reads and parses src synchronously, the way the
// non-interactive commands need it.
func loadDocument(cmd *cobra.Command, src motor.Source) (*motor.Document, error) {
	loader := motor.NewLoader(nil, GetLogger())
	result := loader.LoadNow(cmd.Context(), src)
	if result.Err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", result.Source, result.Err)
	}
	return result.Document, nil
}
