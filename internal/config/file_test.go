package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetFileValuePreservesComments(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "genko", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	src := "# genko configuration\nmarkdown: regex # stripping mode\nwatch:\n  interval: 300ms\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	for key, value := range map[string]string{
		"markdown":       "goldmark",
		"watch.interval": "1s",
		"theme.primary":  "#fabd2f",
	} {
		if err := SetFileValue(key, value); err != nil {
			t.Fatalf("SetFileValue(%s): %v", key, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"# genko configuration", "# stripping mode", "markdown: goldmark"} {
		if !strings.Contains(text, want) {
			t.Errorf("config missing %q:\n%s", want, text)
		}
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"markdown", "goldmark", true},
		{"watch.interval", "1s", true},
		{"theme.primary", "#fabd2f", true},
		{"diagnostics.dir", "", false},
	}
	for _, tt := range tests {
		got, ok, err := FileValue(tt.key)
		if err != nil {
			t.Fatalf("FileValue(%s): %v", tt.key, err)
		}
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FileValue(%s) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, _, err := FileValue("watch"); err == nil {
		t.Error("FileValue(watch) should fail for a section")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Markdown != "goldmark" || cfg.Theme.Primary != "#fabd2f" {
		t.Errorf("Load() = markdown %q, primary %q", cfg.Markdown, cfg.Theme.Primary)
	}
}

func TestSetFileValueCreatesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if _, ok, err := FileValue("width"); err != nil || ok {
		t.Fatalf("FileValue before create = %v, %v", ok, err)
	}
	if err := SetFileValue("width", "eastasian"); err != nil {
		t.Fatalf("SetFileValue: %v", err)
	}
	got, ok, err := FileValue("width")
	if err != nil || !ok || got != "eastasian" {
		t.Fatalf("FileValue(width) = %q, %v, %v", got, ok, err)
	}
}
