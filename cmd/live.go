package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/genko/internal/input"
	"github.com/samsaffron/genko/internal/tui/live"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var liveFlags CountFlags

var liveCmd = &cobra.Command{
	Use:   "live [file]",
	Short: "Edit text with a live manuscript count",
	Long: `Open a full-screen editor that recounts as you type.

Keys:
  ctrl+d   toggle the per-line breakdown
  ctrl+l   count the paragraph under the cursor as a selection
  ctrl+s   save (when a file was given)
  esc      quit

Examples:
  genko live draft.md
  genko live               # scratch buffer, stdin if piped`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runLive,
	ValidArgsFunction: textFileCompletion,
}

func init() {
	rootCmd.AddCommand(liveCmd)
	AddCountFlags(liveCmd, &liveFlags)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, &liveFlags)
	if err != nil {
		return err
	}

	var path, content string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		content = string(data)
	} else {
		content, err = input.ReadStdin()
		if err != nil {
			return err
		}
	}

	model := live.New(newCounter(cfg), path, content, cfg.Watch.Interval)

	var opts []tea.ProgramOption
	if term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithAltScreen())
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// stdin was consumed; read keys from the terminal
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("live editor failed: %w", err)
	}
	return nil
}
