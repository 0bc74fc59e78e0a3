package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samsaffron/genko/internal/input"
	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/ui"
)

func TestCountFilesWithSelection(t *testing.T) {
	files := []input.FileContent{{Path: "a.md", Content: "あいう\nかき"}}
	sel := &input.LineRange{StartLine: 1, EndLine: 1}

	results := countFiles(manuscript.New(), files, sel, false)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Report.Characters != 5 {
		t.Errorf("full characters = %v, want 5", res.Report.Characters)
	}
	if res.Selection == nil || res.Selection.Characters != 3 {
		t.Fatalf("selection = %+v, want 3 characters", res.Selection)
	}
	if res.Report.DebugInfo != nil {
		t.Errorf("debug info should be nil without debug")
	}
}

func TestCountFilesEmptySelection(t *testing.T) {
	files := []input.FileContent{{Path: "a.md", Content: "あ"}}
	sel := &input.LineRange{StartLine: 5}

	results := countFiles(manuscript.New(), files, sel, false)
	if results[0].Selection != nil {
		t.Fatalf("selection past the end should be dropped, got %+v", results[0].Selection)
	}
}

func TestWriteCountTable(t *testing.T) {
	results := []countResult{
		{Source: "a.md", Report: manuscript.CountDocument("あいう", false)},
		{Source: "b.md", Report: manuscript.CountDocument("あ\n\nい", false)},
	}

	var buf bytes.Buffer
	if err := writeCountTable(&buf, results); err != nil {
		t.Fatalf("writeCountTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, 2 rows and total, got %d lines:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		line int
		want []string
	}{
		{0, []string{"FILE", "CHARS", "CELLS", "LINES", "PARAGRAPHS", "SHEETS"}},
		{1, []string{"a.md", "3", "4", "1", "1", "1行"}},
		{2, []string{"b.md", "2", "24", "3", "2", "3行"}},
		{3, []string{"TOTAL", "5", "28", "4", "3", "4行"}},
	}
	for _, tt := range tests {
		got := strings.Fields(lines[tt.line])
		if strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("line %d = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestWriteCountJSON(t *testing.T) {
	t.Run("single report", func(t *testing.T) {
		var buf bytes.Buffer
		results := []countResult{{Source: "a.md", Report: manuscript.CountDocument("あいう", false)}}
		if err := writeCountJSON(&buf, results); err != nil {
			t.Fatalf("writeCountJSON: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, buf.String())
		}
		if decoded["characters"] != 3.0 {
			t.Errorf("characters = %v, want 3", decoded["characters"])
		}
		debugInfo, ok := decoded["debugInfo"]
		if !ok || debugInfo != nil {
			t.Errorf("debugInfo = %v (present %v), want null", debugInfo, ok)
		}
	})

	t.Run("with selection", func(t *testing.T) {
		var buf bytes.Buffer
		results := []countResult{{
			Source:    "a.md",
			Report:    manuscript.CountDocument("あいう", false),
			Selection: manuscript.CountDocument("あ", false),
		}}
		if err := writeCountJSON(&buf, results); err != nil {
			t.Fatalf("writeCountJSON: %v", err)
		}

		var decoded []struct {
			Source    string             `json:"source"`
			Selection *manuscript.Report `json:"selection"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, buf.String())
		}
		if len(decoded) != 1 || decoded[0].Source != "a.md" || decoded[0].Selection.Characters != 1 {
			t.Fatalf("decoded = %+v", decoded)
		}
	})
}

func TestWriteCountSummary(t *testing.T) {
	res := countResult{Source: "a.md", Report: manuscript.CountDocument("あいう", false)}
	var buf bytes.Buffer
	if err := writeCountSummary(&buf, res); err != nil {
		t.Fatalf("writeCountSummary: %v", err)
	}
	if want := ui.BuildStatus(res.Report, nil).Tooltip + "\n"; buf.String() != want {
		t.Fatalf("summary = %q, want %q", buf.String(), want)
	}
}

func TestWriteCountDetailsMultiple(t *testing.T) {
	results := []countResult{
		{Source: "a.md", Report: manuscript.CountDocument("あ", true)},
		{Source: "b.md", Report: manuscript.CountDocument("い", true)},
	}
	var buf bytes.Buffer
	if err := writeCountDetails(&buf, results, nil, false, 80); err != nil {
		t.Fatalf("writeCountDetails: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"== a.md ==", "== b.md ==", "行1 (1文字): あ", "行1 (1文字): い"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCountDetailsSelection(t *testing.T) {
	sel, err := input.ParseLineRange(" 2: ")
	if err != nil {
		t.Fatalf("ParseLineRange: %v", err)
	}
	results := []countResult{{
		Source:    "a.md",
		Report:    manuscript.CountDocument("あ\nいう", true),
		Selection: manuscript.CountDocument("いう", false),
	}}
	var buf bytes.Buffer
	if err := writeCountDetails(&buf, results, &sel, false, 80); err != nil {
		t.Fatalf("writeCountDetails: %v", err)
	}
	want := "\n[選択範囲 2:]\n" + ui.BuildStatus(results[0].Selection, nil).Tooltip + "\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Fatalf("output does not end with the normalized selection block:\n%s", buf.String())
	}
}

func TestCountCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("# 見出し\n\n本文です。"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"count", "--json", path})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("count: %v", err)
	}

	var report manuscript.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	// 見出し (3) + 本文です。(5), two paragraphs
	if report.Characters != 8 || report.Paragraphs != 2 || report.TotalLines != 3 {
		t.Fatalf("report = %+v", report)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "WARN", false},
		{"debug", "DEBUG", false},
		{"INFO", "INFO", false},
		{"error", "ERROR", false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		lvl, err := parseLogLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLogLevel(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLogLevel(%q) error: %v", tt.in, err)
			continue
		}
		if lvl.String() != tt.want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", tt.in, lvl, tt.want)
		}
	}
}
