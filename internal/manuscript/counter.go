package manuscript

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// paragraphBreak splits on blank-line boundaries.
var paragraphBreak = regexp.MustCompile(`\n\n+`)

// lineEndings folds CRLF and lone CR to LF before anything else runs. Without
// it a CR would count as a full cell and CRLF blank lines would not split
// paragraphs; Windows files are meant to count the same as Unix ones.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Counter computes manuscript statistics. A Counter holds no mutable state and
// is safe for concurrent use.
type Counter struct {
	normalizer Normalizer
	width      WidthFunc
	nfc        bool
	logger     *slog.Logger
}

// Option configures a Counter.
type Option func(*Counter)

// WithNormalizer replaces the markdown stripper.
func WithNormalizer(n Normalizer) Option {
	return func(c *Counter) {
		if n != nil {
			c.normalizer = n
		}
	}
}

// WithWidth replaces the character width classifier.
func WithWidth(fn WidthFunc) Option {
	return func(c *Counter) {
		if fn != nil {
			c.width = fn
		}
	}
}

// WithNFC composes text to Unicode NFC before counting, so a base character
// followed by a combining mark counts as one cell where a precomposed form
// exists.
func WithNFC(enabled bool) Option {
	return func(c *Counter) { c.nfc = enabled }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Counter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Counter with the default regex normalizer and code point
// width classifier.
func New(opts ...Option) *Counter {
	c := &Counter{
		normalizer: RegexNormalizer{},
		width:      CodePointWidth,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if rn, ok := c.normalizer.(RegexNormalizer); ok && rn.Logger == nil {
		rn.Logger = c.logger
		c.normalizer = rn
	}
	return c
}

var defaultCounter = New()

// CountDocument counts text with the default Counter.
func CountDocument(text string, debug bool) *Report {
	return defaultCounter.Count(text, debug)
}

// Count computes document statistics for text. debugInfo is populated only
// when debug is true.
func (c *Counter) Count(text string, debug bool) *Report {
	if strings.TrimSpace(text) == "" {
		return zeroReport(debug)
	}

	text = lineEndings.Replace(text)
	if c.nfc {
		text = norm.NFC.String(text)
	}
	clean := c.normalizer.Normalize(text)

	report := &Report{}
	if debug {
		report.DebugInfo = []ParagraphTrace{}
	}

	for _, p := range paragraphBreak.Split(clean, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		report.Paragraphs++

		res := c.CountParagraph(p, debug)
		report.TotalCells += res.Cells
		report.Characters += res.Characters
		report.TotalLines += res.Lines

		if debug {
			report.DebugInfo = append(report.DebugInfo, ParagraphTrace{
				ParagraphNum: report.Paragraphs,
				LineCount:    res.Lines,
				Lines:        res.DebugInfo,
			})
		}
	}

	// Each gap between paragraphs is one blank manuscript line.
	if report.Paragraphs > 1 {
		gaps := report.Paragraphs - 1
		report.EmptyParagraphs = gaps
		report.TotalLines += gaps
		report.TotalCells += gaps * CellsPerLine
	}

	report.ManuscriptPages = report.TotalLines / LinesPerPage
	report.ManuscriptLines = report.TotalLines % LinesPerPage
	report.Manuscripts = float64(report.TotalCells) / CellsPerSheet

	c.logger.Debug("counted document",
		"paragraphs", report.Paragraphs,
		"lines", report.TotalLines,
		"cells", report.TotalCells,
		"characters", report.Characters,
	)
	return report
}

// CountParagraph wraps a single paragraph using the Counter's width rules.
func (c *Counter) CountParagraph(paragraph string, debug bool) ParagraphResult {
	return wrapParagraph(paragraph, c.width, debug)
}
