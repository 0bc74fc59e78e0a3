package cmd

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/samsaffron/genko/internal/config"
	"github.com/samsaffron/genko/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage genko configuration",
	Long: `View or edit your genko configuration.

Examples:
  genko config                     # show current config
  genko config init                # interactive setup
  genko config edit                # edit in $EDITOR
  genko config set width eastasian
  genko config reset               # reset to defaults
  genko config completion zsh      # generate shell completions`,
	RunE: configShow, // Default to show
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Choose counting options interactively",
	RunE:  configInit,
}

var configCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script and print setup instructions.

Examples:
  genko config completion bash
  genko config completion zsh --install`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	Long:  `Reset the configuration file to default values. This will overwrite any existing configuration.`,
	RunE:  configReset,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  genko config set markdown goldmark
  genko config set width eastasian
  genko config set watch.interval 1s
  genko config set theme.primary "#fabd2f"`,
	Args:              cobra.ExactArgs(2),
	RunE:              configSet,
	ValidArgsFunction: configSetCompletion,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value. Keys missing from the file print their
effective value.

Examples:
  genko config get width
  genko config get watch.interval`,
	Args:              cobra.ExactArgs(1),
	RunE:              configGet,
	ValidArgsFunction: configGetCompletion,
}

var installCompletions bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCompletionCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCompletionCmd.Flags().BoolVar(&installCompletions, "install", false, "Install completions to standard location")
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Fprintf(out, "# No config file (using defaults)\n")
		fmt.Fprintf(out, "# Create one at: %s\n\n", configPath)
	} else {
		fmt.Fprintf(out, "# %s\n\n", configPath)
	}

	printConfig(out, cfg)
	return nil
}

// printConfig lists every key with its effective value.
func printConfig(w io.Writer, cfg *config.Config) {
	for _, key := range config.Keys {
		value := effectiveValue(cfg, key)
		if value == "" {
			value = "(default)"
		}
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}
}

// effectiveValue returns the loaded value of a config key as text.
func effectiveValue(cfg *config.Config, key string) string {
	switch key {
	case "markdown":
		return cfg.Markdown
	case "width":
		return cfg.Width
	case "unicode_nfc":
		return strconv.FormatBool(cfg.UnicodeNFC)
	case "log_level":
		return cfg.LogLevel
	case "watch.interval":
		return cfg.Watch.Interval.String()
	case "diagnostics.enabled":
		return strconv.FormatBool(cfg.Diagnostics.Enabled)
	case "diagnostics.dir":
		return cfg.DiagnosticsDir()
	case "theme.primary":
		return cfg.Theme.Primary
	case "theme.secondary":
		return cfg.Theme.Secondary
	case "theme.warning":
		return cfg.Theme.Warning
	case "theme.error":
		return cfg.Theme.Error
	case "theme.muted":
		return cfg.Theme.Muted
	case "theme.text":
		return cfg.Theme.Text
	}
	return ""
}

func configEdit(cmd *cobra.Command, args []string) error {
	path, err := ensureConfigFile()
	if err != nil {
		return err
	}

	editor := cmp.Or(os.Getenv("VISUAL"), os.Getenv("EDITOR"), "vi")
	argv := append(strings.Fields(editor), path)
	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}

	// Catch typos before the next count does.
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("config saved but does not load: %w", err)
	}
	return nil
}

// ensureConfigFile writes the default config if none exists and returns its path.
func ensureConfigFile() (string, error) {
	if !config.Exists() {
		if err := config.Save(config.Default()); err != nil {
			return "", fmt.Errorf("failed to create config file: %w", err)
		}
	}
	return config.GetConfigPath()
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	cfg, err := ui.RunSetupWizard()
	if err != nil {
		return err
	}
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func configReset(cmd *cobra.Command, args []string) error {
	if err := config.Save(config.Default()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	path, _ := config.GetConfigPath()
	fmt.Fprintf(cmd.OutOrStdout(), "Config reset to defaults: %s\n", path)
	return nil
}

// shellCompletion describes where a shell looks for completion scripts.
type shellCompletion struct {
	file  []string // path below $HOME
	gen   func(io.Writer) error
	setup func(path string) string
}

func shellCompletions() map[string]shellCompletion {
	return map[string]shellCompletion{
		"bash": {
			file:  []string{".bash_completion.d", "genko"},
			gen:   rootCmd.GenBashCompletion,
			setup: func(path string) string { return "Add to ~/.bashrc:\n  source " + path },
		},
		"zsh": {
			file:  []string{".local", "share", "zsh", "site-functions", "_genko"},
			gen:   rootCmd.GenZshCompletion,
			setup: func(path string) string {
				return "Ensure ~/.zshrc has (before compinit):\n  fpath+=(" + filepath.Dir(path) + ")\n  autoload -U compinit && compinit"
			},
		},
		"fish": {
			file:  []string{".config", "fish", "completions", "genko.fish"},
			gen:   func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
			setup: func(string) string { return "Completions load automatically." },
		},
		"powershell": {
			file:  []string{".config", "powershell", "completions", "genko.ps1"},
			gen:   rootCmd.GenPowerShellCompletionWithDesc,
			setup: func(path string) string { return "Add to your PowerShell profile:\n  . " + path },
		},
	}
}

func configCompletion(cmd *cobra.Command, args []string) error {
	sc, ok := shellCompletions()[args[0]]
	if !ok {
		return fmt.Errorf("unknown shell: %s", args[0])
	}
	if !installCompletions {
		return sc.gen(cmd.OutOrStdout())
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(append([]string{home}, sc.file...)...)

	var buf bytes.Buffer
	if err := sc.gen(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write completion file: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Installed completions to %s\n\n", path)
	fmt.Fprintln(errOut, sc.setup(path))
	return nil
}

// configSet edits one key in the config file, keeping its comments.
func configSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := config.SetFileValue(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// validateSetting rejects unknown keys and values the loader would refuse.
func validateSetting(key, value string) error {
	if !isConfigKey(key) {
		return unknownKeyError(key)
	}
	if allowed, ok := config.ValidValues[key]; ok {
		for _, v := range allowed {
			if v == value {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q for %s (want one of %s)", value, key, strings.Join(allowed, ", "))
	}
	if key == "watch.interval" {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid duration %q for %s (e.g. 300ms, 1s)", value, key)
		}
	}
	return nil
}

func isConfigKey(key string) bool {
	for _, k := range config.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// suggestKeys returns up to three config keys that fuzzy-match key.
func suggestKeys(key string) []string {
	matches := fuzzy.Find(key, config.Keys)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func unknownKeyError(key string) error {
	if suggestions := suggestKeys(key); len(suggestions) > 0 {
		return fmt.Errorf("unknown config key %q (did you mean %s?)", key, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown config key %q", key)
}

// configGet prints the value written in the config file, or the effective
// value when the file does not set the key.
func configGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !isConfigKey(key) {
		return unknownKeyError(key)
	}

	value, ok, err := config.FileValue(key)
	if err != nil {
		return err
	}
	if !ok {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		value = effectiveValue(cfg, key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// configSetCompletion provides completions for config set
func configSetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return filterPrefix(config.Keys, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return filterPrefix(config.ValidValues[args[0]], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configGetCompletion provides completions for config get
func configGetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return filterPrefix(config.Keys, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
