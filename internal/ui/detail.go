package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/samsaffron/genko/internal/manuscript"
)

// ReasonLabel returns the Japanese label shown for a line's break reason.
func ReasonLabel(t manuscript.LineTrace) string {
	switch t.Kind {
	case manuscript.BreakNewline:
		return "改行"
	case manuscript.BreakEmptyNewline:
		return "空改行（カウントなし）"
	case manuscript.BreakFull:
		return "20文字で改行"
	case manuscript.BreakFullLineStart:
		return "20字+行頭禁則: " + t.Trigger
	case manuscript.BreakLineStart:
		return "行頭禁則: " + t.Trigger
	case manuscript.BreakLineEnd:
		return "行末禁則"
	case manuscript.BreakOverflow:
		return "20文字超過"
	case manuscript.BreakFinal:
		return "最終行"
	default:
		return t.Reason
	}
}

// isKinsoku reports whether a line ended because of a kinsoku rule.
func isKinsoku(k manuscript.BreakKind) bool {
	switch k {
	case manuscript.BreakFullLineStart, manuscript.BreakLineStart, manuscript.BreakLineEnd:
		return true
	}
	return false
}

// DetailText renders r as the plain-text breakdown: a summary block followed
// by every traced line grouped by paragraph.
func DetailText(r *manuscript.Report) string {
	var b strings.Builder
	b.WriteString("=== カウント詳細 ===\n\n")
	fmt.Fprintf(&b, "総文字数: %s\n", FormatCharacters(r.Characters))
	fmt.Fprintf(&b, "総行数: %d\n", r.TotalLines)
	fmt.Fprintf(&b, "総マス数: %d\n", r.TotalCells)
	fmt.Fprintf(&b, "段落数: %d\n", r.Paragraphs)
	fmt.Fprintf(&b, "空行数: %d\n", r.EmptyParagraphs)
	fmt.Fprintf(&b, "原稿用紙: %s\n\n", FormatManuscript(r))
	b.WriteString("=== 各行の詳細 ===\n\n")

	for _, para := range r.DebugInfo {
		fmt.Fprintf(&b, "【段落 %d】（%d行）\n", para.ParagraphNum, para.LineCount)
		for _, line := range para.Lines {
			fmt.Fprintf(&b, "行%d (%s文字): %s\n", line.LineNum, FormatCharacters(line.CharCount), line.Text)
			fmt.Fprintf(&b, "  → %s\n", ReasonLabel(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DetailMarkdown renders the same breakdown as DetailText in markdown,
// for display through glamour. Kinsoku reasons are code spans so the
// theme's warning color sets them apart.
func DetailMarkdown(r *manuscript.Report) string {
	var b strings.Builder
	b.WriteString("# カウント詳細\n\n")
	fmt.Fprintf(&b, "- 総文字数: **%s**\n", FormatCharacters(r.Characters))
	fmt.Fprintf(&b, "- 総行数: **%d**\n", r.TotalLines)
	fmt.Fprintf(&b, "- 総マス数: **%d**\n", r.TotalCells)
	fmt.Fprintf(&b, "- 段落数: **%d**\n", r.Paragraphs)
	fmt.Fprintf(&b, "- 空行数: **%d**\n", r.EmptyParagraphs)
	fmt.Fprintf(&b, "- 原稿用紙: **%s**\n", FormatManuscript(r))

	for _, para := range r.DebugInfo {
		fmt.Fprintf(&b, "\n## 【段落 %d】（%d行）\n\n", para.ParagraphNum, para.LineCount)
		for _, line := range para.Lines {
			reason := "*" + ReasonLabel(line) + "*"
			if isKinsoku(line.Kind) {
				reason = "`" + ReasonLabel(line) + "`"
			}
			fmt.Fprintf(&b, "- 行%d (%s文字): %s  \n  %s\n",
				line.LineNum, FormatCharacters(line.CharCount), escapeMarkdown(line.Text), reason)
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// WriteDetail writes the breakdown of r to w. When styled is true the
// markdown form is rendered with glamour at the given width; otherwise, or
// if rendering fails, the plain-text form is written.
func WriteDetail(w io.Writer, r *manuscript.Report, styled bool, width int) error {
	if styled {
		if rendered, err := renderDetail(DetailMarkdown(r), width, currentTheme); err == nil {
			_, err = fmt.Fprintln(w, rendered)
			return err
		}
	}
	_, err := io.WriteString(w, DetailText(r))
	return err
}
