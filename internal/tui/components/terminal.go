package components

import (
	"fmt"
	"strings"

	"github.com/allbin/serialmon/internal/session"
	"github.com/allbin/serialmon/internal/tui/colors"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(colors.Subtext0)
	noticeStyle    = lipgloss.NewStyle().Foreground(colors.Overlay0).Italic(true)
)

// Terminal is the scrolling view of received lines.
type Terminal struct {
	viewport viewport.Model
	lines    []string
}

func NewTerminal(width, height int) *Terminal {
	return &Terminal{
		viewport: viewport.New(width, height),
		lines:    make([]string, 0),
	}
}

func (t *Terminal) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = height
}

// AddLines appends received lines, each rendered as "[HH:MM:SS.mmm] text".
func (t *Terminal) AddLines(lines []session.Line) {
	for _, line := range lines {
		stamp := timestampStyle.Render(fmt.Sprintf("[%s]", line.Timestamp.Format("15:04:05.000")))
		t.lines = append(t.lines, fmt.Sprintf("%s %s", stamp, sanitize(line.Text)))
	}
	t.refresh()
}

// AddNotice appends an informational message (connects, errors, log toggles).
func (t *Terminal) AddNotice(text string) {
	t.lines = append(t.lines, noticeStyle.Render("-- "+text))
	t.refresh()
}

func (t *Terminal) Clear() {
	t.lines = make([]string, 0)
	t.viewport.SetContent("")
}

func (t *Terminal) refresh() {
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	t.viewport.GotoBottom()
}

// sanitize strips non-printable characters so device noise cannot emit
// terminal control sequences.
func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if r < 32 || r == 127 {
			return '·'
		}
		return r
	}, text)
}

func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	// Only window resizes reach the viewport so it cannot consume the
	// menu key bindings.
	switch msg.(type) {
	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		t.viewport, cmd = t.viewport.Update(msg)
		return cmd
	default:
		return nil
	}
}

func (t *Terminal) View() string {
	return t.viewport.View()
}
