package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samsaffron/genko/internal/config"
	"github.com/samsaffron/genko/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	if err := rootCmd.RegisterFlagCompletionFunc("log-level", enumFlagCompletion("log_level")); err != nil {
		panic("failed to register log-level completion: " + err.Error())
	}
}

var rootCmd = &cobra.Command{
	Use:   "genko",
	Short: "Count Japanese text on 400-cell manuscript paper",
	Long: `genko counts how much 20×20 genkō yōshi paper a Japanese text fills,
applying kinsoku rules for punctuation and brackets at line edges.

Examples:
  genko count draft.md                  # characters and sheets
  genko count -d draft.md               # per-line breakdown
  genko count 'chapters/**/*.md'        # table with a total row
  genko count --select 10:25 draft.md   # count a range of lines
  genko watch draft.md                  # recount when the file changes
  genko live draft.md                   # editor with a live count

  genko config                          # view configuration`,
	Version:           Version,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: setupLogging,
}

var logLevel string
var noColor bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the default slog logger and color profile before
// any command runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		if cfg, err := config.Load(); err == nil {
			level = cfg.LogLevel
		}
	}

	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	ui.InitColor(noColor)
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
