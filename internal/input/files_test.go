package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadFiles(t *testing.T) {
	tempDir := t.TempDir()

	file1 := filepath.Join(tempDir, "one.md")
	file2 := filepath.Join(tempDir, "two.md")
	nested := filepath.Join(tempDir, "drafts", "three.md")
	notes := filepath.Join(tempDir, "drafts", "notes.txt")
	writeFile(t, file1, "一")
	writeFile(t, file2, "二")
	writeFile(t, nested, "三")
	writeFile(t, notes, "メモ")

	t.Run("single file", func(t *testing.T) {
		files, err := ReadFiles([]string{file1}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(files))
		}
		if files[0].Content != "一" || files[0].Path != file1 {
			t.Errorf("got %+v", files[0])
		}
	})

	t.Run("duplicates read once", func(t *testing.T) {
		files, err := ReadFiles([]string{file1, file1, filepath.Join(tempDir, "*.md")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}
	})

	t.Run("recursive glob", func(t *testing.T) {
		files, err := ReadFiles([]string{filepath.Join(tempDir, "**", "*.md")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("expected 3 files from glob, got %d", len(files))
		}
	})

	t.Run("exclude", func(t *testing.T) {
		ex, err := NewExcluder([]string{"three.*", "**/one.md"})
		if err != nil {
			t.Fatalf("NewExcluder: %v", err)
		}
		files, err := ReadFiles([]string{filepath.Join(tempDir, "**", "*.md")}, ex)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].Path != file2 {
			t.Fatalf("expected only two.md, got %+v", files)
		}
	})

	t.Run("glob without matches", func(t *testing.T) {
		files, err := ReadFiles([]string{filepath.Join(tempDir, "*.rst")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 0 {
			t.Fatalf("expected no files, got %d", len(files))
		}
	})

	t.Run("directory skipped", func(t *testing.T) {
		files, err := ReadFiles([]string{filepath.Join(tempDir, "drafts")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 0 {
			t.Fatalf("expected no files, got %d", len(files))
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := ReadFiles([]string{"/nonexistent/file.md"}, nil)
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("原稿\n"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != "原稿\n" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/draft.md"); got != filepath.Join(home, "draft.md") {
		t.Fatalf("expandPath = %q", got)
	}
	if got := expandPath("draft.md"); got != "draft.md" {
		t.Fatalf("expandPath = %q", got)
	}
}

func TestReadFilesClipboard(t *testing.T) {
	origClipboard, origPrimary := readClipboard, readPrimary
	defer func() { readClipboard, readPrimary = origClipboard, origPrimary }()

	readClipboard = func() (string, error) { return "コピー", nil }
	readPrimary = func() (string, error) { return "選択", nil }

	files, err := ReadFiles([]string{"clipboard", "primary"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(files))
	}
	if files[0].Path != ClipboardPath || files[0].Content != "コピー" {
		t.Errorf("clipboard = %+v", files[0])
	}
	if files[1].Path != PrimaryPath || files[1].Content != "選択" {
		t.Errorf("primary = %+v", files[1])
	}
}

func TestReadFilesSpecialNamesAreExact(t *testing.T) {
	origClipboard, origPrimary := readClipboard, readPrimary
	defer func() { readClipboard, readPrimary = origClipboard, origPrimary }()
	readClipboard = func() (string, error) { return "コピー", nil }
	readPrimary = func() (string, error) { return "選択", nil }

	dir := t.TempDir()
	for name, content := range map[string]string{
		"Clipboard": "大文字",
		"PRIMARY":   "主",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)

	tests := []struct {
		path string
		want string
	}{
		{"Clipboard", "大文字"},
		{"PRIMARY", "主"},
		{"./Clipboard", "大文字"},
		{"clipboard", "コピー"},
		{"primary", "選択"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			files, err := ReadFiles([]string{tt.path}, nil)
			if err != nil {
				t.Fatalf("ReadFiles(%q): %v", tt.path, err)
			}
			if len(files) != 1 || files[0].Content != tt.want {
				t.Fatalf("ReadFiles(%q) = %+v, want content %q", tt.path, files, tt.want)
			}
		})
	}
}
