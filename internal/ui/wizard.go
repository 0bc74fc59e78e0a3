package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/samsaffron/genko/internal/config"
)

// getTTY opens /dev/tty for direct terminal access (bypasses redirections)
func getTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// RunSetupWizard asks for the counting options, saves them and returns the
// resulting config.
func RunSetupWizard() (*config.Config, error) {
	cfg := config.Default()
	if existing, err := config.Load(); err == nil {
		cfg = existing
	}

	tty, ttyErr := getTTY()
	if ttyErr == nil {
		defer tty.Close()
		fmt.Fprintln(tty, "genko setup: choose how text is counted.")
		fmt.Fprintln(tty)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should Markdown be handled?").
				Options(
					huh.NewOption("Strip with regular expressions (editor compatible)", "regex"),
					huh.NewOption("Parse with goldmark", "goldmark"),
					huh.NewOption("Count the raw text", "none"),
				).
				Value(&cfg.Markdown),
			huh.NewSelect[string]().
				Title("Which characters are half width?").
				Options(
					huh.NewOption("ASCII and half-width katakana", "codepoint"),
					huh.NewOption("Unicode East Asian Width", "eastasian"),
				).
				Value(&cfg.Width),
			huh.NewConfirm().
				Title("Compose combining marks before counting?").
				Value(&cfg.UnicodeNFC),
		),
	)

	if ttyErr == nil {
		form = form.WithInput(tty).WithOutput(tty)
	}

	if err := form.Run(); err != nil {
		return nil, err
	}

	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	path, _ := config.GetConfigPath()
	if ttyErr == nil {
		fmt.Fprintf(tty, "Config saved to %s\n\n", path)
	} else {
		fmt.Fprintf(os.Stderr, "Config saved to %s\n\n", path)
	}
	return cfg, nil
}
