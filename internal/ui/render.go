package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

type rendererKey struct {
	width int
	theme *Theme
}

// detailRenderers caches one glamour renderer per width and theme.
var detailRenderers sync.Map // rendererKey -> *glamour.TermRenderer

// detailStyle styles the only elements DetailMarkdown emits: headings,
// list items, emphasis for break reasons, code spans for kinsoku reasons and
// strong counts.
func detailStyle(t *Theme) ansi.StyleConfig {
	primary := string(t.Primary)
	secondary := string(t.Secondary)
	warning := string(t.Warning)
	muted := string(t.Muted)
	text := string(t.Text)
	var noMargin uint

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: &text},
			Margin:         &noMargin,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				Color:       &secondary,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "■ "}},
		H2: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{}},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: &text},
			},
		},
		Item:   ansi.StylePrimitive{BlockPrefix: "• "},
		Emph:   ansi.StylePrimitive{Color: &muted, Italic: boolPtr(true)},
		Strong: ansi.StylePrimitive{Color: &primary, Bold: boolPtr(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: &warning},
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func detailRenderer(width int, t *Theme) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, theme: t}
	if cached, ok := detailRenderers.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(detailStyle(t)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	detailRenderers.Store(key, r)
	return r, nil
}

// renderDetail renders DetailMarkdown output for a terminal of the given
// width in theme t.
func renderDetail(md string, width int, t *Theme) (string, error) {
	r, err := detailRenderer(width, t)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
