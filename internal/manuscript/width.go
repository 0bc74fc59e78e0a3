package manuscript

import "golang.org/x/text/width"

// Cell weights.
const (
	HalfWidth = 0.5
	FullWidth = 1.0
)

// WidthFunc returns the number of manuscript cells a single rune occupies.
type WidthFunc func(r rune) float64

// CodePointWidth classifies by code point range: printable ASCII and half-width
// katakana take half a cell, everything else a full cell. Astral-plane runes
// and combining marks fall into the full-width branch.
func CodePointWidth(r rune) float64 {
	if (r >= 0x20 && r <= 0x7E) || (r >= 0xFF61 && r <= 0xFF9F) {
		return HalfWidth
	}
	return FullWidth
}

// EastAsianWidth classifies using the Unicode East Asian Width property.
// Ambiguous runes are treated as wide, which is how Japanese text renders them.
func EastAsianWidth(r rune) float64 {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
		return FullWidth
	case width.EastAsianNarrow, width.EastAsianHalfwidth:
		return HalfWidth
	default:
		// Neutral: Latin-1 letters, symbols and most controls.
		if r < 0x20 {
			return FullWidth
		}
		return HalfWidth
	}
}

// WidthByName resolves a configured width mode. Unknown names fall back to
// CodePointWidth.
func WidthByName(name string) WidthFunc {
	switch name {
	case "eastasian", "east-asian":
		return EastAsianWidth
	default:
		return CodePointWidth
	}
}
