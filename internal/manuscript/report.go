package manuscript

// Paper geometry of a standard genkō yōshi sheet.
const (
	CellsPerLine  = 20
	LinesPerPage  = 20
	CellsPerSheet = CellsPerLine * LinesPerPage
)

// Report is the document-level result of a count.
type Report struct {
	TotalCells      int              `json:"totalCells"`
	Characters      float64          `json:"characters"`
	TotalLines      int              `json:"totalLines"`
	Paragraphs      int              `json:"paragraphs"`
	Manuscripts     float64          `json:"manuscripts"`
	ManuscriptPages int              `json:"manuscriptPages"`
	ManuscriptLines int              `json:"manuscriptLines"`
	EmptyParagraphs int              `json:"emptyParagraphs"`
	DebugInfo       []ParagraphTrace `json:"debugInfo"` // nil unless counted in debug mode
}

// ParagraphTrace groups the line traces of one paragraph.
type ParagraphTrace struct {
	ParagraphNum int         `json:"paragraphNum"`
	LineCount    int         `json:"lineCount"`
	Lines        []LineTrace `json:"lines"`
}

// LineTrace records what was placed on one manuscript line and why it ended.
type LineTrace struct {
	LineNum   int       `json:"lineNum"`
	Text      string    `json:"text"`
	CharCount float64   `json:"charCount"`
	Reason    string    `json:"reason"`
	Kind      BreakKind `json:"kind"`
	Trigger   string    `json:"trigger,omitempty"`
}

// BreakKind classifies why a line ended.
type BreakKind string

const (
	BreakNewline       BreakKind = "newline"
	BreakEmptyNewline  BreakKind = "empty-newline"
	BreakFull          BreakKind = "full"
	BreakFullLineStart BreakKind = "full-line-start"
	BreakLineStart     BreakKind = "line-start"
	BreakLineEnd       BreakKind = "line-end"
	BreakOverflow      BreakKind = "overflow"
	BreakFinal         BreakKind = "final"
)

// Tag returns the reason text for a break of this kind. trigger is the
// kinsoku character that caused the break, if any.
func (k BreakKind) Tag(trigger string) string {
	switch k {
	case BreakNewline:
		return "line break"
	case BreakEmptyNewline:
		return "suppressed empty break"
	case BreakFull:
		return "20-cell break"
	case BreakFullLineStart:
		return "20-cell + line-start exception: " + trigger
	case BreakLineStart:
		return "line-start exception: " + trigger
	case BreakLineEnd:
		return "line-end exception"
	case BreakOverflow:
		return "exceeds 20 cells"
	case BreakFinal:
		return "final line"
	default:
		return string(k)
	}
}

// ParagraphResult is the wrapper's output for a single paragraph.
type ParagraphResult struct {
	Cells      int
	Characters float64
	Lines      int
	DebugInfo  []LineTrace // nil unless debugging
}

func zeroReport(debug bool) *Report {
	r := &Report{}
	if debug {
		r.DebugInfo = []ParagraphTrace{}
	}
	return r
}
