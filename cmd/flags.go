package cmd

import (
	"github.com/spf13/cobra"
)

// CountFlags holds the counting options shared by count, watch and live.
// Each command creates its own instance with its own variables.
type CountFlags struct {
	Markdown string
	Width    string
	NFC      bool
}

// AddCountFlags adds --markdown, --width and --nfc with completion
func AddCountFlags(cmd *cobra.Command, dest *CountFlags) {
	cmd.Flags().StringVar(&dest.Markdown, "markdown", "", "Markdown handling: regex, goldmark, none (default from config)")
	cmd.Flags().StringVar(&dest.Width, "width", "", "Width rules: codepoint, eastasian (default from config)")
	cmd.Flags().BoolVar(&dest.NFC, "nfc", false, "Compose combining marks to NFC before counting")
	if err := cmd.RegisterFlagCompletionFunc("markdown", enumFlagCompletion("markdown")); err != nil {
		panic("failed to register markdown completion: " + err.Error())
	}
	if err := cmd.RegisterFlagCompletionFunc("width", enumFlagCompletion("width")); err != nil {
		panic("failed to register width completion: " + err.Error())
	}
}

// AddDebugFlag adds the --debug/-d flag
func AddDebugFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "debug", "d", false, "Show the per-line breakdown")
}
