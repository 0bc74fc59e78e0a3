package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/samsaffron/genko/internal/clipboard"
	"golang.org/x/term"
)

// Special input names.
const (
	StdinPath     = "-"
	ClipboardPath = "clipboard"
	PrimaryPath   = "primary" // the highlighted text on Linux desktops
)

// Clipboard sources, replaceable in tests.
var (
	readClipboard = clipboard.ReadText
	readPrimary   = clipboard.ReadPrimarySelection
)

// FileContent represents content read from a file or stdin
type FileContent struct {
	Path    string // File path, or "-" for stdin
	Content string // The text content
}

// Excluder filters paths against --exclude patterns.
type Excluder struct {
	patterns []glob.Glob
}

// NewExcluder compiles glob patterns. A pattern matches either the whole
// slash-separated path or its base name.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		e.patterns = append(e.patterns, g)
	}
	return e, nil
}

// Excluded reports whether path matches any pattern.
func (e *Excluder) Excluded(path string) bool {
	if e == nil {
		return false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range e.patterns {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}

// ReadFiles reads content from the given paths
// Special values:
//   - "-": reads standard input
//   - "clipboard": reads text from the system clipboard
//   - "primary": reads the PRIMARY selection
//   - Glob patterns (e.g., "drafts/**/*.md"): expands and reads all matching files
//   - Regular paths: reads file content directly
//
// The special names match exactly; "./clipboard" reads a file of that name.
// Paths matched by exclude are skipped, and each file is read once.
func ReadFiles(paths []string, exclude *Excluder) ([]FileContent, error) {
	var result []FileContent
	seen := make(map[string]bool)

	for _, path := range paths {
		switch path {
		case StdinPath:
			content, err := ReadAll(os.Stdin)
			if err != nil {
				return nil, err
			}
			result = append(result, FileContent{Path: StdinPath, Content: content})
			continue
		case ClipboardPath:
			content, err := readClipboard()
			if err != nil {
				return nil, err
			}
			result = append(result, FileContent{Path: ClipboardPath, Content: content})
			continue
		case PrimaryPath:
			content, err := readPrimary()
			if err != nil {
				return nil, fmt.Errorf("failed to read primary selection: %w", err)
			}
			result = append(result, FileContent{Path: PrimaryPath, Content: content})
			continue
		}

		expandedPath := expandPath(path)

		var matches []string
		if containsGlobChars(path) {
			var err error
			matches, err = doublestar.FilepathGlob(expandedPath, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", path, err)
			}
			sort.Strings(matches)
		} else {
			matches = []string{expandedPath}
		}

		for _, match := range matches {
			if seen[match] || exclude.Excluded(match) {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %q: %w", match, err)
			}
			if info.IsDir() {
				continue
			}

			content, err := os.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read %q: %w", match, err)
			}

			result = append(result, FileContent{
				Path:    match,
				Content: string(content),
			})
		}
	}

	return result, nil
}

// HasStdin returns true if stdin has data available (not a TTY)
func HasStdin() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode()&os.ModeCharDevice) == 0 || fi.Size() > 0
}

// ReadStdin reads all content from stdin
// Returns empty string if stdin is a TTY or has no data
func ReadStdin() (string, error) {
	if !HasStdin() {
		return "", nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	return ReadAll(os.Stdin)
}

// ReadAll reads r to the end as text.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// containsGlobChars returns true if the path contains glob metacharacters
func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
