package manuscript

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gtext "github.com/yuin/goldmark/text"
)

var goldmarkParser = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
).Parser()

// GoldmarkNormalizer extracts the readable text of a CommonMark document by
// walking its AST. Paragraph-level blocks are joined by a blank line so the
// counter sees the same paragraph boundaries the author wrote. Code blocks,
// images, thematic breaks and raw HTML are dropped.
type GoldmarkNormalizer struct{}

func (GoldmarkNormalizer) Normalize(text string) string {
	src := []byte(text)
	doc := goldmarkParser.Parse(gtext.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock,
			*ast.RawHTML, *ast.Image, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				sb.Write(node.Label(src))
			}
		case *ast.Paragraph, *ast.Heading:
			if !entering {
				sb.WriteString("\n\n")
			}
		case *ast.TextBlock:
			if !entering {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimRight(sb.String(), "\n")
}
