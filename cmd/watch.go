package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/signal"
	"github.com/samsaffron/genko/internal/ui"
	"github.com/spf13/cobra"
)

var (
	watchFlags    CountFlags
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Print the count whenever a file changes",
	Long: `Poll a file and print a status line each time its text changes.

Examples:
  genko watch draft.md
  genko watch draft.md --interval 1s`,
	Args:              cobra.ExactArgs(1),
	RunE:              runWatch,
	ValidArgsFunction: textFileCompletion,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	AddCountFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (default from config watch.interval)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, &watchFlags)
	if err != nil {
		return err
	}
	interval := cfg.Watch.Interval
	if watchInterval > 0 {
		interval = watchInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context())
	defer stop()

	return watchFile(ctx, cmd.OutOrStdout(), args[0], newCounter(cfg), interval)
}

// watchFile prints a status line for path now and after every change seen
// at the polling interval, until ctx is cancelled. Read errors after the
// first successful read are logged and retried, since editors often replace
// files on save.
func watchFile(ctx context.Context, w io.Writer, path string, counter *manuscript.Counter, interval time.Duration) error {
	var last string
	seen := false

	check := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		text := string(data)
		if seen && text == last {
			return nil
		}
		seen = true
		last = text

		status := ui.BuildStatus(counter.Count(text, false), nil)
		_, err = fmt.Fprintf(w, "%s  %s\n", time.Now().Format("15:04:05"), status.Text)
		return err
	}

	if err := check(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := check(); err != nil {
				slog.Warn("watch check failed", "path", path, "error", err)
			}
		}
	}
}
