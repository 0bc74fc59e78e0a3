package live

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/ui"
)

func newTestModel(path, content string) *Model {
	m := New(manuscript.New(), path, content, time.Second)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestNewCountsInitialContent(t *testing.T) {
	m := newTestModel("", "あいう")
	if got := m.Report().Characters; got != 3 {
		t.Fatalf("characters = %v, want 3", got)
	}
	if got := m.StatusText(); got != "3文字 (1行)" {
		t.Fatalf("status = %q", got)
	}
	if m.Report().DebugInfo != nil {
		t.Fatalf("debug info should be nil until the detail pane is open")
	}
}

func TestTypingRecounts(t *testing.T) {
	m := newTestModel("", "あいう")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("え")})

	if got := m.Content(); got != "あいうえ" {
		t.Fatalf("content = %q", got)
	}
	if got := m.Report().Characters; got != 4 {
		t.Fatalf("characters = %v, want 4", got)
	}
}

func TestToggleDetail(t *testing.T) {
	m := newTestModel("", "あいう")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	if m.Report().DebugInfo == nil {
		t.Fatalf("expected debug info with detail pane open")
	}
	if !strings.Contains(m.View(), "カウント詳細") {
		t.Fatalf("detail pane not rendered:\n%s", m.View())
	}
	if m.Content() != "あいう" {
		t.Fatalf("ctrl+d must not reach the editor, content = %q", m.Content())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Report().DebugInfo != nil {
		t.Fatalf("expected debug info dropped after closing the pane")
	}
}

func TestParagraphMode(t *testing.T) {
	m := newTestModel("", "あ\n\nいう")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	want := "選択: 2文字 (1行) | 全体: 3文字 (3行)"
	if got := m.StatusText(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := m.StatusText(); got != "3文字 (3行)" {
		t.Fatalf("status after toggle = %q", got)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	m := newTestModel(path, "原稿")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "原稿" {
		t.Fatalf("saved %q", data)
	}
	if !strings.HasPrefix(m.statusMsg, "Saved to ") {
		t.Fatalf("status message = %q", m.statusMsg)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	m := newTestModel("", "原稿")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.statusMsg != "No file path configured" {
		t.Fatalf("status message = %q", m.statusMsg)
	}
}

func TestSaveFailureUsesErrorStyle(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	ui.InitTheme(ui.ThemeConfig{Error: "#00ff00"})
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
		ui.InitTheme(ui.ThemeConfig{})
	})

	path := filepath.Join(t.TempDir(), "missing", "draft.md")
	m := newTestModel(path, "原稿")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if !m.statusErr || !strings.HasPrefix(m.statusMsg, "Failed to save") {
		t.Fatalf("status = %q, error = %v", m.statusMsg, m.statusErr)
	}
	if !strings.Contains(m.View(), "38;2;0;255;0") {
		t.Fatalf("failed save not rendered in the error color:\n%q", m.View())
	}

	m.filePath = filepath.Join(t.TempDir(), "draft.md")
	m.save()
	if m.statusErr {
		t.Fatal("successful save should clear the error state")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel("", "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatalf("view should be empty after quitting")
	}
}

func TestTickReschedules(t *testing.T) {
	m := newTestModel("", "あ")
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected the next tick to be scheduled")
	}
}

func TestCurrentParagraph(t *testing.T) {
	text := "一行目\n二行目\n\n三行目\n\n\n四行目"
	tests := []struct {
		row  int
		want string
	}{
		{0, "一行目\n二行目"},
		{1, "一行目\n二行目"},
		{2, ""},
		{3, "三行目"},
		{6, "四行目"},
		{7, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := currentParagraph(text, tt.row); got != tt.want {
			t.Errorf("currentParagraph(row %d) = %q, want %q", tt.row, got, tt.want)
		}
	}
}
