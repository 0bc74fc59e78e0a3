package cmd

import (
	"log/slog"

	"github.com/samsaffron/genko/internal/config"
	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/ui"
	"github.com/spf13/cobra"
)

// loadConfig loads the config file, applies the command's flag overrides
// and initializes the theme.
func loadConfig(cmd *cobra.Command, flags *CountFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(flags.Markdown, flags.Width)
	if cmd.Flags().Changed("nfc") {
		cfg.UnicodeNFC = flags.NFC
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ui.InitTheme(ui.ThemeConfig{
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Warning:   cfg.Theme.Warning,
		Error:     cfg.Theme.Error,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
	})
	return cfg, nil
}

// newCounter builds a Counter from the configured normalizer and width rules.
func newCounter(cfg *config.Config) *manuscript.Counter {
	return manuscript.New(
		manuscript.WithNormalizer(manuscript.NormalizerByName(cfg.Markdown)),
		manuscript.WithWidth(manuscript.WidthByName(cfg.Width)),
		manuscript.WithNFC(cfg.UnicodeNFC),
		manuscript.WithLogger(slog.Default()),
	)
}
