package manuscript

import (
	"log/slog"

	"github.com/dlclark/regexp2"
)

// Normalizer removes markup from raw text before counting.
type Normalizer interface {
	Normalize(text string) string
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(string) string

func (f NormalizerFunc) Normalize(text string) string { return f(text) }

// PlainText leaves text untouched.
var PlainText Normalizer = NormalizerFunc(func(s string) string { return s })

type stripRule struct {
	name        string
	re          *regexp2.Regexp
	replacement string
}

func rule(name, pattern, replacement string) stripRule {
	return stripRule{
		name:        name,
		re:          regexp2.MustCompile(pattern, regexp2.Multiline),
		replacement: replacement,
	}
}

// markdownRules run in order; later rules must not re-match what earlier ones
// left behind. regexp2 is used for the backreferences and for \s matching
// ideographic spaces.
var markdownRules = []stripRule{
	rule("heading", `^#{1,6}\s+`, ""),
	rule("bold", `(\*\*|__)(.*?)\1`, "$2"),
	rule("italic", `(\*|_)(.*?)\1`, "$2"),
	rule("link", `\[([^\]]+)\]\([^\)]+\)`, "$1"),
	rule("image", `!\[([^\]]*)\]\([^\)]+\)`, ""),
	rule("fence", "```[\\s\\S]*?```", ""),
	rule("code", "`([^`]+)`", "$1"),
	rule("bullet", `^[\*\-\+]\s+`, ""),
	rule("ordered", `^[0-9]+\.\s+`, ""),
	rule("quote", `^>\s+`, ""),
	rule("rule", `^(\*{3,}|-{3,}|_{3,})$`, ""),
	rule("html", `<[^>]+>`, ""),
}

// RegexNormalizer is the default best-effort markdown stripper. It is a lossy
// textual transform, not a parser.
type RegexNormalizer struct {
	Logger *slog.Logger
}

// Normalize applies every strip rule in order.
func (n RegexNormalizer) Normalize(text string) string {
	out := text
	for _, r := range markdownRules {
		replaced, err := r.re.Replace(out, r.replacement, -1, -1)
		if err != nil {
			if n.Logger != nil {
				n.Logger.Debug("markdown rule skipped", "rule", r.name, "error", err)
			}
			continue
		}
		out = replaced
	}
	return out
}

// StripMarkdown runs the default RegexNormalizer.
func StripMarkdown(text string) string {
	return RegexNormalizer{}.Normalize(text)
}

// NormalizerByName resolves a configured markdown mode: "regex" (default),
// "goldmark", or "none".
func NormalizerByName(name string) Normalizer {
	switch name {
	case "goldmark":
		return GoldmarkNormalizer{}
	case "none", "plain":
		return PlainText
	default:
		return RegexNormalizer{}
	}
}
