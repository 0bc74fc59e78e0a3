// Package clipboard reads manuscript text from the desktop clipboard and
// from the PRIMARY selection.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no selection reader exists on this system.
var ErrUnavailable = errors.New("no selection reader available")

// ReadText returns the clipboard contents.
func ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("read clipboard: %w", ErrUnavailable)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// primaryReaders are tried in order; Wayland first, then X11.
var primaryReaders = [][]string{
	{"wl-paste", "--primary", "--no-newline"},
	{"xclip", "-o", "-selection", "primary"},
	{"xsel", "--primary", "--output"},
}

// ReadPrimarySelection returns the text currently highlighted on a Linux
// desktop. macOS has no PRIMARY selection, so the clipboard is used there.
func ReadPrimarySelection() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return ReadText()
	case "linux", "freebsd", "openbsd", "netbsd":
		return runFirst(primaryReaders)
	default:
		return "", fmt.Errorf("read primary selection on %s: %w", runtime.GOOS, ErrUnavailable)
	}
}

// runFirst runs the first installed command that succeeds and returns its
// stdout.
func runFirst(cmds [][]string) (string, error) {
	var lastErr error
	for _, argv := range cmds {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		out, err := exec.Command(argv[0], argv[1:]...).Output()
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", argv[0], err)
			continue
		}
		return string(out), nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("read primary selection: %w", lastErr)
	}
	return "", fmt.Errorf("read primary selection (install wl-paste, xclip or xsel): %w", ErrUnavailable)
}
