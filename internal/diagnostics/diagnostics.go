package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samsaffron/genko/internal/manuscript"
)

// TraceDiagnostic captures one debug count: the input, the options it was
// counted with and the resulting per-line trace.
type TraceDiagnostic struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // file path, or "-" for stdin
	Markdown  string    `json:"markdown"`
	Width     string    `json:"width"`
	NFC       bool      `json:"nfc"`

	Input  string             `json:"input"`
	Report *manuscript.Report `json:"report"`
}

// WriteTrace writes diagnostic data for a debug count.
// Creates both a JSON file and a human-readable markdown file and returns
// the JSON path.
func WriteTrace(dir string, diag *TraceDiagnostic) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create diagnostics directory: %w", err)
	}

	baseName := uniqueBaseName(dir, "count-trace-"+diag.Timestamp.Format("2006-01-02T15-04-05"))

	jsonPath := filepath.Join(dir, baseName+".json")
	if err := writeJSON(jsonPath, diag); err != nil {
		return "", err
	}

	mdPath := filepath.Join(dir, baseName+".md")
	if err := writeMarkdown(mdPath, diag); err != nil {
		return "", err
	}

	return jsonPath, nil
}

// uniqueBaseName appends -2, -3, ... when traces from the same second exist.
func uniqueBaseName(dir, base string) string {
	name := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, name+".json")); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}

func writeJSON(path string, diag *TraceDiagnostic) error {
	data, err := json.MarshalIndent(diag, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write diagnostics JSON: %w", err)
	}
	return nil
}

func writeMarkdown(path string, diag *TraceDiagnostic) error {
	var b strings.Builder
	r := diag.Report
	if r == nil {
		r = &manuscript.Report{}
	}

	b.WriteString("# Count Trace\n\n")
	b.WriteString(fmt.Sprintf("**Timestamp:** %s\n", diag.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("**Source:** %s\n", diag.Source))
	b.WriteString(fmt.Sprintf("**Markdown:** %s\n", diag.Markdown))
	b.WriteString(fmt.Sprintf("**Width:** %s\n", diag.Width))
	b.WriteString(fmt.Sprintf("**NFC:** %t\n", diag.NFC))
	b.WriteString("\n---\n\n")

	b.WriteString("## Totals\n\n")
	b.WriteString(fmt.Sprintf("- characters: %s\n", formatCells(r.Characters)))
	b.WriteString(fmt.Sprintf("- cells: %d\n", r.TotalCells))
	b.WriteString(fmt.Sprintf("- lines: %d\n", r.TotalLines))
	b.WriteString(fmt.Sprintf("- paragraphs: %d\n", r.Paragraphs))
	b.WriteString(fmt.Sprintf("- blank lines: %d\n", r.EmptyParagraphs))
	b.WriteString(fmt.Sprintf("- sheets: %d pages + %d lines\n", r.ManuscriptPages, r.ManuscriptLines))
	b.WriteString("\n---\n\n")

	for _, para := range r.DebugInfo {
		b.WriteString(fmt.Sprintf("## Paragraph %d (%d lines)\n\n", para.ParagraphNum, para.LineCount))
		b.WriteString("| line | cells | reason | text |\n")
		b.WriteString("|---:|---:|---|---|\n")
		for _, line := range para.Lines {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
				line.LineNum, formatCells(line.CharCount), line.Reason, tableCell(line.Text)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Input\n\n")
	fence := codeFence(diag.Input)
	b.WriteString(fence + "\n")
	b.WriteString(diag.Input)
	if !strings.HasSuffix(diag.Input, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n")

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write diagnostics markdown: %w", err)
	}
	return nil
}

// formatCells prints half-cell counts without exponents: 2.5, 1000000.
func formatCells(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// codeFence returns a backtick fence longer than any backtick run in s, so
// fences inside the input cannot close it.
func codeFence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func tableCell(s string) string {
	return cellEscaper.Replace(s)
}
