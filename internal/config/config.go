package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Markdown    string            `mapstructure:"markdown"`    // regex, goldmark, or none
	Width       string            `mapstructure:"width"`       // codepoint or eastasian
	UnicodeNFC  bool              `mapstructure:"unicode_nfc"` // compose to NFC before counting
	LogLevel    string            `mapstructure:"log_level"`
	Watch       WatchConfig       `mapstructure:"watch"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Theme       ThemeConfig       `mapstructure:"theme"`
}

// WatchConfig controls how often watch and live modes recount.
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// DiagnosticsConfig configures trace dumps
type DiagnosticsConfig struct {
	Enabled bool   `mapstructure:"enabled"` // Always write a trace when counting with --debug
	Dir     string `mapstructure:"dir"`     // Override default directory
}

// ThemeConfig allows customization of UI colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Primary   string `mapstructure:"primary"`   // counts in the status line
	Secondary string `mapstructure:"secondary"` // headers, borders
	Warning   string `mapstructure:"warning"`   // kinsoku exceptions in the detail view
	Error     string `mapstructure:"error"`
	Muted     string `mapstructure:"muted"` // reasons, hints
	Text      string `mapstructure:"text"`
}

// Keys lists every configuration key, used for completion and suggestions.
var Keys = []string{
	"markdown",
	"width",
	"unicode_nfc",
	"log_level",
	"watch.interval",
	"diagnostics.enabled",
	"diagnostics.dir",
	"theme.primary",
	"theme.secondary",
	"theme.warning",
	"theme.error",
	"theme.muted",
	"theme.text",
}

// ValidValues lists accepted values for enumerated keys.
var ValidValues = map[string][]string{
	"markdown":            {"regex", "goldmark", "none"},
	"width":               {"codepoint", "eastasian"},
	"unicode_nfc":         {"true", "false"},
	"log_level":           {"debug", "info", "warn", "error"},
	"diagnostics.enabled": {"true", "false"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("markdown", "regex")
	v.SetDefault("width", "codepoint")
	v.SetDefault("unicode_nfc", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("watch.interval", 300*time.Millisecond)
	v.SetDefault("diagnostics.enabled", false)
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}
	return LoadFrom(configPath, ".")
}

// LoadFrom reads config.yaml from the first directory that has one. A missing
// file is not an error; defaults apply.
func LoadFrom(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("GENKO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the counter cannot interpret.
func (c *Config) Validate() error {
	for key, value := range map[string]string{
		"markdown":  c.Markdown,
		"width":     c.Width,
		"log_level": c.LogLevel,
	} {
		if !isValid(key, value) {
			return fmt.Errorf("invalid %s %q (want one of %s)", key, value, strings.Join(ValidValues[key], ", "))
		}
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("invalid watch.interval %s (must be positive)", c.Watch.Interval)
	}
	return nil
}

func isValid(key, value string) bool {
	for _, v := range ValidValues[key] {
		if v == value {
			return true
		}
	}
	return false
}

// ApplyOverrides applies command-line overrides. Empty strings leave the
// configured value in place.
func (c *Config) ApplyOverrides(markdown, width string) {
	if markdown != "" {
		c.Markdown = markdown
	}
	if width != "" {
		c.Width = width
	}
}

// GetConfigDir returns the XDG config directory for genko.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "genko"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "genko"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetDiagnosticsDir returns the XDG data directory for genko trace dumps.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDiagnosticsDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "genko", "diagnostics")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "genko-diagnostics") // fallback
	}
	return filepath.Join(homeDir, ".local", "share", "genko", "diagnostics")
}

// DiagnosticsDir returns the configured trace directory or the XDG default.
func (c *Config) DiagnosticsDir() string {
	if c.Diagnostics.Dir != "" {
		return c.Diagnostics.Dir
	}
	return GetDiagnosticsDir()
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, []byte(Render(cfg)), 0644)
}

// Render produces the commented YAML form of cfg. Optional keys are written
// only when set.
func Render(cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, `# genko configuration
# Run 'genko config edit' to modify

# Markdown stripping before counting: regex, goldmark, or none
markdown: %s

# Character width rules: codepoint (ASCII and half-width katakana are half
# a cell) or eastasian (Unicode East Asian Width property)
width: %s

# Compose combining marks (e.g. か + ゛) before counting
unicode_nfc: %t

log_level: %s

watch:
  interval: %s

diagnostics:
  enabled: %t
`, cfg.Markdown, cfg.Width, cfg.UnicodeNFC, cfg.LogLevel, cfg.Watch.Interval, cfg.Diagnostics.Enabled)
	if cfg.Diagnostics.Dir != "" {
		fmt.Fprintf(&b, "  dir: %s\n", strconv.Quote(cfg.Diagnostics.Dir))
	} else {
		b.WriteString("  # dir: ~/.local/share/genko/diagnostics\n")
	}

	theme := []struct{ key, value string }{
		{"primary", cfg.Theme.Primary},
		{"secondary", cfg.Theme.Secondary},
		{"warning", cfg.Theme.Warning},
		{"error", cfg.Theme.Error},
		{"muted", cfg.Theme.Muted},
		{"text", cfg.Theme.Text},
	}
	header := false
	for _, t := range theme {
		if t.value == "" {
			continue
		}
		if !header {
			b.WriteString("\n# Colors: ANSI numbers (0-255) or hex codes\ntheme:\n")
			header = true
		}
		fmt.Fprintf(&b, "  %s: %s\n", t.key, strconv.Quote(t.value))
	}
	return b.String()
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Markdown: "regex",
		Width:    "codepoint",
		LogLevel: "warn",
		Watch:    WatchConfig{Interval: 300 * time.Millisecond},
	}
}
