package cmd

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/takaishi/minigrep/config"
	"github.com/takaishi/minigrep/editor"
	"github.com/takaishi/minigrep/logging"
	"github.com/takaishi/minigrep/search"
	"github.com/takaishi/minigrep/source"
	"github.com/takaishi/minigrep/tui"
)

type rootOptions struct {
	cfgFile     string
	interactive bool
	debug       bool
}

// NewRootCommand builds the minigrep command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "minigrep QUERY FILE",
		Short: "Print lines of FILE that contain QUERY",
		Long: `minigrep prints every line of FILE that contains QUERY, in file order.

Matching is case-sensitive unless the CASE_INSENSITIVE environment variable
is set (to any value). Flags go before QUERY; use -- to search for a query
that starts with a dash.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.cfgFile, "config", "", "settings file (default is $XDG_CONFIG_HOME/minigrep/config.yaml)")
	rootCmd.Flags().BoolVar(&opts.interactive, "tui", false, "search interactively")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	// Everything after the first positional argument is positional too
	rootCmd.Flags().SetInterspersed(false)

	// No subcommands: "help", "completion" or "version" are ordinary queries
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(versionTemplate)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func run(cmd *cobra.Command, args []string, opts *rootOptions) error {
	// Positional arguments are validated as [program, query, file, ...]
	argv := append([]string{cmd.Root().Name()}, args...)
	cfg, err := config.Build(slices.Values(argv), config.IgnoreCaseFromEnv())
	if err != nil {
		return fmt.Errorf("problem parsing arguments: %w", err)
	}

	settings, err := config.LoadSettings(opts.cfgFile)
	if err != nil {
		return err
	}

	log, err := newLogger(settings, opts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debug("configuration",
		zap.String("query", cfg.Query),
		zap.String("source", cfg.SourceName),
		zap.Bool("case_sensitive", cfg.CaseSensitive))

	text, err := source.Load(cfg.SourceName)
	if err != nil {
		return err
	}
	log.Debug("source loaded", zap.Int("bytes", len(text)))

	if opts.interactive {
		return runInteractive(cfg, text, settings, log)
	}

	lines := search.Search(cfg, text)
	log.Debug("search finished", zap.Int("matches", len(lines)))
	return printLines(cmd.OutOrStdout(), lines)
}

// newLogger logs to the configured file, or to stderr outside the TUI
func newLogger(settings config.Settings, opts *rootOptions) (*zap.Logger, error) {
	level := settings.Log.Level
	if opts.debug {
		level = "debug"
	}
	if opts.interactive && settings.Log.File == "" {
		// stderr belongs to the screen
		return zap.NewNop(), nil
	}
	return logging.New(level, settings.Log.File)
}

func runInteractive(cfg config.Config, text string, settings config.Settings, log *zap.Logger) error {
	m, err := tui.Run(tui.Options{
		Config:   cfg,
		Text:     text,
		Settings: settings,
		Logger:   log.Named("tui"),
	})
	if err != nil {
		return err
	}

	result := m.Selected()
	if result == nil {
		return nil
	}

	ed, err := editor.DetectEditor(settings.Editor)
	if err != nil {
		return err
	}
	log.Debug("opening editor", zap.String("editor", string(ed)), zap.Int("line", result.Line))
	return editor.OpenFile(ed, result.File, result.Line)
}

// printLines writes each line followed by a newline
func printLines(out io.Writer, lines []string) error {
	w := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
