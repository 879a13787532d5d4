package components

import (
	"strings"

	"github.com/allbin/serialmon/internal/tui/colors"
	"github.com/allbin/serialmon/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt is a single-line text input with command history, used for the
// send-command and log-file-name prompts.
type Prompt struct {
	textInput     textinput.Model
	history       []string
	historyIndex  int
	currentInput  string
	terminalWidth int
}

func NewPrompt(placeholder string) *Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = ""

	return &Prompt{
		textInput:    ti,
		history:      make([]string, 0),
		historyIndex: -1,
	}
}

func (p *Prompt) SetWidth(width int) {
	p.terminalWidth = width
	// border(2) + padding(2) + prompt(1) + space(1)
	usableWidth := width - 6
	if usableWidth < 20 {
		usableWidth = 20
	}
	p.textInput.Width = usableWidth
}

func (p *Prompt) SetPlaceholder(placeholder string) {
	p.textInput.Placeholder = placeholder
}

func (p *Prompt) Focus() {
	p.textInput.Focus()
}

func (p *Prompt) Blur() {
	p.textInput.Blur()
}

func (p *Prompt) Value() string {
	return p.textInput.Value()
}

func (p *Prompt) SetValue(value string) {
	p.textInput.SetValue(value)
}

func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	var cmd tea.Cmd
	p.textInput, cmd = p.textInput.Update(msg)
	return p, cmd
}

// View renders the prompt with a styled label, e.g. "send>".
func (p *Prompt) View(label string) string {
	labelStyled := lipgloss.NewStyle().
		Foreground(colors.Green).
		Bold(true).
		Render(label)

	content := lipgloss.JoinHorizontal(lipgloss.Left, labelStyled, " ", p.textInput.View())

	adjustedWidth := p.terminalWidth - 4
	if adjustedWidth < 10 {
		adjustedWidth = 10
	}

	return styles.InputStyle.
		Width(adjustedWidth).
		AlignHorizontal(lipgloss.Left).
		BorderForeground(colors.Green).
		Render(content)
}

// AddToHistory records a submitted value, skipping blanks and
// immediate duplicates. Only the last 100 entries are kept.
func (p *Prompt) AddToHistory(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if len(p.history) > 0 && p.history[len(p.history)-1] == value {
		return
	}

	p.history = append(p.history, value)
	if len(p.history) > 100 {
		p.history = p.history[1:]
	}
	p.historyIndex = -1
	p.currentInput = ""
}

// NavigateHistoryUp moves to the previous submitted value.
func (p *Prompt) NavigateHistoryUp() {
	if len(p.history) == 0 {
		return
	}

	if p.historyIndex == -1 {
		p.currentInput = p.textInput.Value()
		p.historyIndex = len(p.history) - 1
	} else if p.historyIndex > 0 {
		p.historyIndex--
	}

	p.textInput.SetValue(p.history[p.historyIndex])
}

// NavigateHistoryDown moves toward the most recent value, then back to
// whatever was being typed before history navigation started.
func (p *Prompt) NavigateHistoryDown() {
	if len(p.history) == 0 || p.historyIndex == -1 {
		return
	}

	if p.historyIndex < len(p.history)-1 {
		p.historyIndex++
		p.textInput.SetValue(p.history[p.historyIndex])
	} else {
		p.historyIndex = -1
		p.textInput.SetValue(p.currentInput)
		p.currentInput = ""
	}
}
