package live

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/samsaffron/genko/internal/manuscript"
	"github.com/samsaffron/genko/internal/ui"
)

// Model is an editor that keeps a manuscript count of its buffer up to date.
type Model struct {
	// Dimensions
	width  int
	height int

	counter  *manuscript.Counter
	interval time.Duration
	filePath string

	// UI components
	editor textarea.Model
	detail viewport.Model
	help   help.Model
	keyMap KeyMap
	styles *ui.Styles

	// Count state
	report        *manuscript.Report
	selection     *manuscript.Report
	countedText   string
	countedRow    int
	dirty         bool
	showDetail    bool
	paragraphMode bool

	// Status message
	statusMsg     string
	statusMsgTime time.Time
	statusErr     bool

	quitting bool
}

// tickMsg triggers a periodic recount.
type tickMsg time.Time

// New creates a live editor seeded with content. filePath may be empty, in
// which case saving is disabled.
func New(counter *manuscript.Counter, filePath, content string, interval time.Duration) *Model {
	width := 80
	height := 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}

	styles := ui.DefaultStyles()

	ta := textarea.New()
	ta.Placeholder = "原稿を入力..."
	ta.Prompt = ""
	ta.ShowLineNumbers = true
	ta.CharLimit = 0 // No limit
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	ta.FocusedStyle.Placeholder = styles.Placeholder
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetValue(content)
	ta.Focus()

	m := &Model{
		width:    width,
		height:   height,
		counter:  counter,
		interval: interval,
		filePath: filePath,
		editor:   ta,
		detail:   viewport.New(width, 0),
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
		styles:   styles,
		dirty:    true,
	}
	m.layout()
	m.recount()
	return m
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick(m.interval))
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		m.recount()
		return m, tick(m.interval)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Save):
			m.save()
			return m, nil

		case key.Matches(msg, m.keyMap.ToggleDetail):
			m.showDetail = !m.showDetail
			m.dirty = true
			m.layout()
			m.recount()
			return m, nil

		case key.Matches(msg, m.keyMap.ToggleParagraph):
			m.paragraphMode = !m.paragraphMode
			m.dirty = true
			m.recount()
			return m, nil

		case m.showDetail && key.Matches(msg, m.keyMap.ScrollUp):
			m.detail.HalfPageUp()
			return m, nil

		case m.showDetail && key.Matches(msg, m.keyMap.ScrollDown):
			m.detail.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.recount()
	return m, cmd
}

// layout sizes the editor and detail pane to the window.
func (m *Model) layout() {
	editorHeight := m.height - 2 // status line and help
	if m.showDetail {
		paneHeight := editorHeight / 2
		editorHeight -= paneHeight
		m.detail.Width = m.width - 4
		m.detail.Height = max(paneHeight-2, 1) // border
	}
	m.editor.SetWidth(max(m.width-2, 10))
	m.editor.SetHeight(max(editorHeight, 3))
	m.help.Width = m.width
}

// recount refreshes the reports when the buffer, cursor paragraph or view
// mode changed since the last count.
func (m *Model) recount() {
	text := m.editor.Value()
	row := m.editor.Line()
	if !m.dirty && text == m.countedText && (!m.paragraphMode || row == m.countedRow) {
		return
	}

	m.report = m.counter.Count(text, m.showDetail)
	m.selection = nil
	if m.paragraphMode {
		if p := currentParagraph(text, row); p != "" {
			m.selection = m.counter.Count(p, false)
		}
	}
	if m.showDetail {
		m.detail.SetContent(ui.DetailText(m.report))
	}

	m.countedText = text
	m.countedRow = row
	m.dirty = false
}

// currentParagraph returns the blank-line delimited block containing row,
// or "" when row is on a blank line.
func currentParagraph(text string, row int) string {
	lines := strings.Split(text, "\n")
	if row < 0 || row >= len(lines) || strings.TrimSpace(lines[row]) == "" {
		return ""
	}
	start, end := row, row
	for start > 0 && strings.TrimSpace(lines[start-1]) != "" {
		start--
	}
	for end < len(lines)-1 && strings.TrimSpace(lines[end+1]) != "" {
		end++
	}
	return strings.Join(lines[start:end+1], "\n")
}

func (m *Model) save() {
	if m.filePath == "" {
		m.setStatus("No file path configured")
		return
	}
	if err := os.WriteFile(m.filePath, []byte(m.editor.Value()), 0644); err != nil {
		m.setStatus(fmt.Sprintf("Failed to save: %v", err))
		m.statusErr = true
		return
	}
	m.setStatus(fmt.Sprintf("Saved to %s", m.filePath))
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusMsgTime = time.Now()
	m.statusErr = false
}

// Report returns the most recent full-buffer report.
func (m *Model) Report() *manuscript.Report {
	return m.report
}

// Content returns the current buffer.
func (m *Model) Content() string {
	return m.editor.Value()
}

// StatusText returns the status line without styling.
func (m *Model) StatusText() string {
	return ui.BuildStatus(m.report, m.selection).Text
}

// View renders the editor, optional detail pane, status line and help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.editor.View())
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.styles.Pane.Render(m.detail.View()))
		b.WriteString("\n")
	}

	status := m.StatusText()
	bar := m.styles.StatusBar
	if m.statusMsg != "" && time.Since(m.statusMsgTime) < 3*time.Second {
		status += "  " + m.statusMsg
		if m.statusErr {
			bar = m.styles.StatusError
		}
	}
	b.WriteString(bar.Render(ui.TruncateStatus(status, m.width-2)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keyMap))
	return b.String()
}
