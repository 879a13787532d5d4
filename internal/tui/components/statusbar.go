package components

import (
	"fmt"

	"github.com/allbin/serialmon/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the one-line session summary at the bottom of the
// monitor: connection state, port, framing, logging target, clock.
type StatusBar struct {
	title     string
	portPath  string
	baudRate  int
	connected bool
	logPath   string
	err       error
	width     int
}

func NewStatusBar(title string) *StatusBar {
	return &StatusBar{title: title}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConnected(portPath string, baudRate int) {
	sb.connected = true
	sb.portPath = portPath
	sb.baudRate = baudRate
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	sb.connected = false
	sb.portPath = ""
	sb.baudRate = 0
	sb.logPath = ""
	sb.err = err
}

func (sb *StatusBar) SetLogPath(path string) {
	sb.logPath = path
}

func (sb *StatusBar) View(timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// State segment, colored like a vim mode indicator
	var stateStyle lipgloss.Style
	var stateText string
	if sb.connected {
		stateStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Green).
			Bold(true).
			Padding(0, 1)
		stateText = "CONNECTED"
	} else {
		stateStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Red).
			Bold(true).
			Padding(0, 1)
		stateText = "DISCONNECTED"
	}
	state := stateStyle.Render(stateText)

	// Port + framing segment
	var connInfo string
	if sb.connected {
		connInfo = fmt.Sprintf("%s ⚡ %d baud 8N1", sb.portPath, sb.baudRate)
	} else if sb.err != nil {
		connInfo = sb.err.Error()
	} else {
		connInfo = sb.title
	}
	connStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	if sb.err != nil {
		connStyle = connStyle.Foreground(colors.Red)
	}
	connection := connStyle.Render(connInfo)

	// Logging segment
	var logInfo string
	if sb.logPath != "" {
		logInfo = "● log: " + sb.logPath
	} else {
		logInfo = "○ log off"
	}
	logStyle := lipgloss.NewStyle().
		Foreground(colors.Yellow).
		Padding(0, 1)
	if sb.logPath == "" {
		logStyle = logStyle.Foreground(colors.Overlay0)
	}
	logging := logStyle.Render(logInfo)

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Render("│")

	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, state, connection)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, logging, divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	barStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	return barStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
