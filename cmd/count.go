package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/samsaffron/genko/internal/config"
	"github.com/samsaffron/genko/internal/diagnostics"
	"github.com/samsaffron/genko/internal/input"
	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	countFlags   CountFlags
	countDebug   bool
	countJSON    bool
	countSelect  string
	countExclude []string
	countDump    bool
)

var countCmd = &cobra.Command{
	Use:   "count [file|glob|-]...",
	Short: "Count characters and manuscript sheets",
	Long: `Count how much genkō yōshi paper each input fills.

With no arguments, or "-", text is read from stdin; "clipboard" and
"primary" read the clipboard and the highlighted text (use ./clipboard for a
file with that name). Glob patterns support ** for recursive matches. Several inputs print a table with a total row.

Examples:
  genko count draft.md
  genko count -d draft.md                     # per-line breakdown
  genko count --json draft.md
  genko count --select 10:25 draft.md         # count lines 10-25 as a selection
  genko count 'book/**/*.md' --exclude '*.notes.md'
  genko count primary                         # the highlighted text`,
	RunE:              runCount,
	ValidArgsFunction: textFileCompletion,
}

func init() {
	rootCmd.AddCommand(countCmd)
	AddCountFlags(countCmd, &countFlags)
	AddDebugFlag(countCmd, &countDebug)
	countCmd.Flags().BoolVar(&countJSON, "json", false, "Output as JSON")
	countCmd.Flags().StringVar(&countSelect, "select", "", "Also count a line range START:END of a single input (1-indexed, inclusive)")
	countCmd.Flags().StringArrayVar(&countExclude, "exclude", nil, "Skip files matching this glob (repeatable)")
	countCmd.Flags().BoolVar(&countDump, "dump", false, "Write a trace to the diagnostics directory (implies --debug)")
}

// countResult is one counted input.
type countResult struct {
	Source    string             `json:"source"`
	Input     string             `json:"-"`
	Report    *manuscript.Report `json:"report"`
	Selection *manuscript.Report `json:"selection,omitempty"`
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, &countFlags)
	if err != nil {
		return err
	}

	exclude, err := input.NewExcluder(countExclude)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{input.StdinPath}
	}
	files, err := input.ReadFiles(args, exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files matched")
	}

	var selection *input.LineRange
	if countSelect != "" {
		if len(files) != 1 {
			return fmt.Errorf("--select needs exactly one input, got %d", len(files))
		}
		r, err := input.ParseLineRange(countSelect)
		if err != nil {
			return err
		}
		selection = &r
	}

	debug := countDebug || countDump
	results := countFiles(newCounter(cfg), files, selection, debug)

	if countDump || (debug && cfg.Diagnostics.Enabled) {
		if err := dumpTraces(cfg, results); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case countJSON:
		return writeCountJSON(out, results)
	case debug:
		return writeCountDetails(out, results, selection, isStyled(out), terminalWidth(out))
	case len(results) == 1:
		return writeCountSummary(out, results[0])
	default:
		return writeCountTable(out, results)
	}
}

// countFiles counts every input and, when selection is set, the selected
// lines of each input as well.
func countFiles(counter *manuscript.Counter, files []input.FileContent, selection *input.LineRange, debug bool) []countResult {
	results := make([]countResult, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			res := countResult{
				Source: f.Path,
				Input:  f.Content,
				Report: counter.Count(f.Content, debug),
			}
			if selection != nil {
				if text := selection.Extract(f.Content); text != "" {
					res.Selection = counter.Count(text, false)
				}
			}
			slog.Debug("counted input", "source", f.Path, "characters", res.Report.Characters)
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return results
}

func writeCountJSON(w io.Writer, results []countResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 && results[0].Selection == nil {
		return enc.Encode(results[0].Report)
	}
	return enc.Encode(results)
}

func writeCountSummary(w io.Writer, res countResult) error {
	_, err := fmt.Fprintln(w, ui.BuildStatus(res.Report, res.Selection).Tooltip)
	return err
}

func writeCountDetails(w io.Writer, results []countResult, selection *input.LineRange, styled bool, width int) error {
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", res.Source)
		}
		if err := ui.WriteDetail(w, res.Report, styled, width); err != nil {
			return err
		}
		if res.Selection != nil && selection != nil {
			fmt.Fprintf(w, "\n[選択範囲 %s]\n%s\n", selection, ui.BuildStatus(res.Selection, nil).Tooltip)
		}
	}
	return nil
}

func writeCountTable(w io.Writer, results []countResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "FILE\tCHARS\tCELLS\tLINES\tPARAGRAPHS\tSHEETS\t")

	total := &manuscript.Report{}
	for _, res := range results {
		r := res.Report
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t\n",
			res.Source, ui.FormatCharacters(r.Characters), r.TotalCells, r.TotalLines, r.Paragraphs, ui.FormatManuscript(r))
		total.Characters += r.Characters
		total.TotalCells += r.TotalCells
		total.TotalLines += r.TotalLines
		total.Paragraphs += r.Paragraphs
	}
	total.ManuscriptPages = total.TotalLines / manuscript.LinesPerPage
	total.ManuscriptLines = total.TotalLines % manuscript.LinesPerPage

	fmt.Fprintf(tw, "TOTAL\t%s\t%d\t%d\t%d\t%s\t\n",
		ui.FormatCharacters(total.Characters), total.TotalCells, total.TotalLines, total.Paragraphs, ui.FormatManuscript(total))
	return tw.Flush()
}

func dumpTraces(cfg *config.Config, results []countResult) error {
	dir := cfg.DiagnosticsDir()
	for _, res := range results {
		path, err := diagnostics.WriteTrace(dir, &diagnostics.TraceDiagnostic{
			Timestamp: time.Now(),
			Source:    res.Source,
			Markdown:  cfg.Markdown,
			Width:     cfg.Width,
			NFC:       cfg.UnicodeNFC,
			Input:     res.Input,
			Report:    res.Report,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Trace written to %s\n", path)
	}
	return nil
}

// isStyled reports whether w is a color-capable terminal.
func isStyled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
