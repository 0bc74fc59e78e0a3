package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/samsaffron/genko/internal/manuscript"
)

// FormatCharacters renders a character total without a trailing ".0"
// for whole numbers, so 12 prints as "12" and 12.5 as "12.5".
func FormatCharacters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatManuscript renders the sheet count of r as "N枚", "M行" or "N枚とM行".
func FormatManuscript(r *manuscript.Report) string {
	switch {
	case r.ManuscriptPages == 0:
		return fmt.Sprintf("%d行", r.ManuscriptLines)
	case r.ManuscriptLines == 0:
		return fmt.Sprintf("%d枚", r.ManuscriptPages)
	default:
		return fmt.Sprintf("%d枚と%d行", r.ManuscriptPages, r.ManuscriptLines)
	}
}

// Status is the one-line summary plus its longer tooltip.
type Status struct {
	Text    string
	Tooltip string
}

// BuildStatus summarizes a full-document report and, when selection is
// non-nil, the report for the selected range.
func BuildStatus(full, selection *manuscript.Report) Status {
	fullSheets := FormatManuscript(full)
	if selection == nil {
		return Status{
			Text:    FormatCharacters(full.Characters) + "文字 (" + fullSheets + ")",
			Tooltip: tooltipBlock(full, fullSheets),
		}
	}

	selSheets := FormatManuscript(selection)
	text := fmt.Sprintf("選択: %s文字 (%s) | 全体: %s文字 (%s)",
		FormatCharacters(selection.Characters), selSheets,
		FormatCharacters(full.Characters), fullSheets)

	var tip strings.Builder
	tip.WriteString("[選択範囲]\n")
	tip.WriteString(tooltipBlock(selection, selSheets))
	tip.WriteString("\n\n[全体]\n")
	tip.WriteString(tooltipBlock(full, fullSheets))

	return Status{Text: text, Tooltip: tip.String()}
}

func tooltipBlock(r *manuscript.Report, sheets string) string {
	return fmt.Sprintf("文字数: %s\nマス数: %d\n段落数: %d\n行数: %d\n原稿用紙: %s",
		FormatCharacters(r.Characters), r.TotalCells, r.Paragraphs, r.TotalLines, sheets)
}

// TruncateStatus fits s into width terminal columns. Full-width
// characters occupy two columns.
func TruncateStatus(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
