package manuscript

import (
	"math"
	"strings"
)

// lineWrapper is the per-paragraph state machine. It is created fresh for
// every paragraph and never shared.
type lineWrapper struct {
	debug bool

	current    float64 // cells on the open line
	lineNum    int
	characters float64
	text       strings.Builder
	traces     []LineTrace
}

func (w *lineWrapper) place(r rune, cells float64) {
	w.current += cells
	if w.debug {
		w.text.WriteRune(r)
	}
}

// emit records a trace for the open line and clears its text buffer.
func (w *lineWrapper) emit(kind BreakKind, trigger string, cells float64) {
	if !w.debug {
		return
	}
	w.traces = append(w.traces, LineTrace{
		LineNum:   w.lineNum,
		Text:      w.text.String(),
		CharCount: cells,
		Reason:    kind.Tag(trigger),
		Kind:      kind,
		Trigger:   trigger,
	})
	w.text.Reset()
}

// advance starts a new empty line.
func (w *lineWrapper) advance() {
	w.lineNum++
	w.current = 0
}

// carry starts a new line that already holds r.
func (w *lineWrapper) carry(r rune, cells float64) {
	w.lineNum++
	w.current = cells
	if w.debug {
		w.text.WriteRune(r)
	}
}

// WrapParagraph lays one paragraph out on 20-cell lines. The paragraph must
// not contain blank lines; single newlines are hard breaks.
func WrapParagraph(paragraph string, debug bool) ParagraphResult {
	return wrapParagraph(paragraph, CodePointWidth, debug)
}

func wrapParagraph(paragraph string, width WidthFunc, debug bool) ParagraphResult {
	w := &lineWrapper{debug: debug, lineNum: 1}
	if debug {
		w.traces = []LineTrace{}
	}

	chars := []rune(paragraph)
	for i := 0; i < len(chars); i++ {
		r := chars[i]
		hasNext := i+1 < len(chars)

		if r == '\n' {
			if w.current == 0 {
				w.emit(BreakEmptyNewline, "", 0)
				continue
			}
			w.emit(BreakNewline, "", w.current)
			w.advance()
			continue
		}

		cells := width(r)
		w.characters += cells

		switch {
		case w.current+cells == CellsPerLine:
			w.place(r, cells)
			if hasNext && IsLineStartForbidden(chars[i+1]) {
				i++
				next := chars[i]
				nextCells := width(next)
				w.characters += nextCells
				w.place(next, nextCells)
				w.emit(BreakFullLineStart, string(next), w.current)
			} else {
				w.emit(BreakFull, "", w.current)
			}
			if i+1 < len(chars) {
				w.advance()
			}

		case w.current+cells > CellsPerLine:
			switch {
			case IsLineStartForbidden(r):
				w.place(r, cells)
				w.emit(BreakLineStart, string(r), w.current)
				if hasNext {
					w.advance()
				}
			case IsLineEndForbidden(r):
				w.emit(BreakLineEnd, "", w.current)
				w.carry(r, cells)
			default:
				w.emit(BreakOverflow, "", w.current)
				w.carry(r, cells)
			}

		default:
			w.place(r, cells)
		}
	}

	if w.debug && w.current > 0 && w.text.Len() > 0 {
		w.emit(BreakFinal, "", w.current)
	}

	return ParagraphResult{
		Cells:      int(math.Ceil(w.characters + float64(w.lineNum))),
		Characters: w.characters,
		Lines:      w.lineNum,
		DebugInfo:  w.traces,
	}
}
