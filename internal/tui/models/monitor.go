package models

import (
	"fmt"
	"path/filepath"
	"time"

	serial "github.com/allbin/serialmon"
	"github.com/allbin/serialmon/internal/session"
	"github.com/allbin/serialmon/internal/tui/components"
	"github.com/allbin/serialmon/internal/tui/keys"
	"github.com/allbin/serialmon/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// screen identifies which panel the operator is interacting with. The
// received-data terminal stays visible across all of them.
type screen int

const (
	screenMenu screen = iota
	screenPorts
	screenBaud
	screenPromptSend
	screenPromptLog
)

// menuBaudRates is the fixed operator-facing choice set.
var menuBaudRates = []int{9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

const defaultBaudRate = 115200

// PortEventMsg delivers a session port event into the Update loop.
type PortEventMsg session.Event

// PortLister enumerates attached ports; swapped out in tests.
type PortLister func() ([]serial.PortInfo, error)

func defaultPortLister() ([]serial.PortInfo, error) {
	paths, err := serial.ListPorts()
	if err != nil {
		return nil, err
	}
	infos := make([]serial.PortInfo, 0, len(paths))
	for _, path := range paths {
		info, err := serial.GetPortInfo(path)
		if err != nil {
			infos = append(infos, serial.PortInfo{Name: filepath.Base(path), Path: path})
			continue
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPortLister replaces the port enumerator, used by tests.
func WithPortLister(list PortLister) Option {
	return func(m *Monitor) {
		m.listPorts = list
	}
}

// WithInitialConnection connects to the given port on startup instead
// of waiting for the operator to pick one from the menu.
func WithInitialConnection(portPath string, baudRate int) Option {
	return func(m *Monitor) {
		m.initialPort = portPath
		m.initialBaud = baudRate
	}
}

// Monitor is the Bubble Tea model for the interactive monitor. It is
// the menu driver from the session's point of view: every operator
// choice becomes exactly one session operation.
type Monitor struct {
	session   *session.Session
	listPorts PortLister

	screen       screen
	cursor       int
	picker       *components.PortPicker
	baudCursor   int
	selectedPort string

	terminal  *components.Terminal
	statusBar *components.StatusBar
	prompt    *components.Prompt
	help      help.Model
	keys      keys.MonitorKeys

	initialPort string
	initialBaud int

	ready bool
	width int
}

func NewMonitor(sess *session.Session, opts ...Option) *Monitor {
	m := &Monitor{
		session:   sess,
		listPorts: defaultPortLister,
		terminal:  components.NewTerminal(0, 0),
		statusBar: components.NewStatusBar("Serial Monitor"),
		prompt:    components.NewPrompt(""),
		help:      help.New(),
		keys:      keys.NewMonitorKeys(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monitor) Init() tea.Cmd {
	if m.initialPort != "" {
		m.connect(m.initialPort, m.initialBaud)
	}
	return m.waitForEvent()
}

// waitForEvent blocks on the session's single-consumer event channel
// and re-arms itself after every delivery.
func (m *Monitor) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return PortEventMsg(<-m.session.Events())
	}
}

func (m *Monitor) connect(portPath string, baudRate int) {
	if err := m.session.Connect(portPath, baudRate); err != nil {
		m.terminal.AddNotice(fmt.Sprintf("connect failed: %v", err))
		m.statusBar.SetDisconnected(err)
		return
	}
	m.statusBar.SetConnected(portPath, baudRate)
	m.terminal.AddNotice(fmt.Sprintf("connected to %s at %d baud", portPath, baudRate))
}

func (m *Monitor) disconnect() {
	if err := m.session.Disconnect(); err != nil {
		m.terminal.AddNotice(fmt.Sprintf("disconnect: %v", err))
	} else {
		m.terminal.AddNotice("disconnected")
	}
	m.statusBar.SetDisconnected(nil)
	m.statusBar.SetLogPath("")
}

func (m *Monitor) toggleLogging(fileName string) {
	active, path, err := m.session.ToggleLogging(fileName)
	if err != nil {
		m.terminal.AddNotice(fmt.Sprintf("logging: %v", err))
		return
	}
	if active {
		m.terminal.AddNotice("logging to " + path)
		m.statusBar.SetLogPath(path)
	} else {
		m.terminal.AddNotice("logging stopped")
		m.statusBar.SetLogPath("")
	}
}

// menuItems returns the current menu, driven entirely by session state.
func (m *Monitor) menuItems() []string {
	if !m.session.Connected() {
		return []string{"Connect", "Exit"}
	}
	logItem := "Start logging"
	if m.session.LoggingActive() {
		logItem = "Stop logging"
	}
	return []string{"Disconnect", "Send command", logItem, "Exit"}
}

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		panelHeight := 10
		statusBarHeight := 1
		borderHeight := 1
		m.terminal.SetSize(msg.Width, msg.Height-panelHeight-statusBarHeight-borderHeight)
		m.prompt.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true
		return m, m.terminal.Update(msg)

	case PortEventMsg:
		return m.handlePortEvent(session.Event(msg))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			// Best-effort teardown: close port, close log, then exit 0.
			m.session.Disconnect()
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Monitor) handlePortEvent(ev session.Event) (tea.Model, tea.Cmd) {
	wasConnected := m.session.Connected()

	lines, err := m.session.HandleEvent(ev)
	m.terminal.AddLines(lines)
	if err != nil {
		m.terminal.AddNotice(err.Error())
	}

	switch ev.Kind {
	case session.EventOpened:
		// Informational only; the connect path already reported it.
	case session.EventErrored, session.EventClosed:
		if wasConnected {
			m.terminal.AddNotice("connection lost")
			m.statusBar.SetDisconnected(ev.Err)
			m.statusBar.SetLogPath("")
			// Whatever panel was up refers to a dead connection.
			m.screen = screenMenu
			m.cursor = 0
			m.prompt.Blur()
		}
	}

	return m, m.waitForEvent()
}

func (m *Monitor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenPorts:
		return m.handlePortsKey(msg)
	case screenBaud:
		return m.handleBaudKey(msg)
	case screenPromptSend, screenPromptLog:
		return m.handlePromptKey(msg)
	}
	return m, nil
}

func (m *Monitor) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Clear):
		m.terminal.Clear()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Select):
		return m.selectMenuItem(items[m.cursor])
	}
	return m, nil
}

func (m *Monitor) selectMenuItem(item string) (tea.Model, tea.Cmd) {
	switch item {
	case "Connect":
		ports, err := m.listPorts()
		if err != nil {
			m.terminal.AddNotice(fmt.Sprintf("list ports: %v", err))
			return m, nil
		}
		if len(ports) == 0 {
			m.terminal.AddNotice("no serial ports found")
			return m, nil
		}
		m.picker = components.NewPortPicker(ports)
		m.screen = screenPorts

	case "Disconnect":
		m.disconnect()
		m.cursor = 0

	case "Send command":
		m.prompt.SetPlaceholder("command to send")
		m.prompt.SetValue("")
		m.prompt.Focus()
		m.screen = screenPromptSend

	case "Start logging":
		m.prompt.SetPlaceholder("log file name (empty for default)")
		m.prompt.SetValue("")
		m.prompt.Focus()
		m.screen = screenPromptLog

	case "Stop logging":
		m.toggleLogging("")

	case "Exit":
		m.session.Disconnect()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Monitor) handlePortsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, m.keys.Select):
		selected := m.picker.Selected()
		if selected == "" {
			return m, nil
		}
		m.selectedPort = selected
		m.baudCursor = baudIndex(defaultBaudRate)
		m.screen = screenBaud
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func baudIndex(rate int) int {
	for i, r := range menuBaudRates {
		if r == rate {
			return i
		}
	}
	return 0
}

func (m *Monitor) handleBaudKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.baudCursor > 0 {
			m.baudCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.baudCursor < len(menuBaudRates)-1 {
			m.baudCursor++
		}
	case key.Matches(msg, m.keys.Back):
		m.screen = screenPorts
	case key.Matches(msg, m.keys.Select):
		m.connect(m.selectedPort, menuBaudRates[m.baudCursor])
		m.screen = screenMenu
		m.cursor = 0
	}
	return m, nil
}

func (m *Monitor) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.prompt.Blur()
		m.screen = screenMenu
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.screen == screenPromptSend {
			m.prompt.NavigateHistoryUp()
			return m, nil
		}

	case key.Matches(msg, m.keys.Down):
		if m.screen == screenPromptSend {
			m.prompt.NavigateHistoryDown()
			return m, nil
		}

	case key.Matches(msg, m.keys.Select):
		value := m.prompt.Value()
		if m.screen == screenPromptSend {
			if err := m.session.Send(value); err != nil {
				m.terminal.AddNotice(fmt.Sprintf("send: %v", err))
			} else {
				m.terminal.AddNotice("sent: " + value)
			}
			m.prompt.AddToHistory(value)
		} else {
			m.toggleLogging(value)
		}
		m.prompt.SetValue("")
		m.prompt.Blur()
		m.screen = screenMenu
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Monitor) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := styles.ContentBorderStyle.Render(m.terminal.View())

	var panel string
	switch m.screen {
	case screenMenu:
		panel = m.menuView()
	case screenPorts:
		panel = lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TitleStyle.Render("Select port"),
			m.picker.View(),
			styles.MenuHintStyle.Render("enter: select  esc: back"),
		)
	case screenBaud:
		panel = m.baudView()
	case screenPromptSend:
		panel = lipgloss.JoinVertical(
			lipgloss.Left,
			m.prompt.View("send>"),
			styles.MenuHintStyle.Render("enter: send  ↑/↓: history  esc: cancel"),
		)
	case screenPromptLog:
		panel = lipgloss.JoinVertical(
			lipgloss.Left,
			m.prompt.View("log>"),
			styles.MenuHintStyle.Render("enter: start logging  esc: cancel"),
		)
	}

	statusBar := m.statusBar.View(time.Now().Format("15:04:05"))

	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, content, panel, m.help.View(m.keys), statusBar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, panel, statusBar)
}

func (m *Monitor) menuView() string {
	items := m.menuItems()
	rendered := make([]string, 0, len(items)+1)
	for i, item := range items {
		if i == m.cursor {
			rendered = append(rendered, styles.MenuSelectedStyle.Render("▸ "+item))
		} else {
			rendered = append(rendered, styles.MenuItemStyle.Render("  "+item))
		}
	}
	rendered = append(rendered, styles.MenuHintStyle.Render("↑/↓: move  enter: select  c: clear  ?: help"))
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m *Monitor) baudView() string {
	rows := make([]string, 0, len(menuBaudRates)+2)
	rows = append(rows, styles.TitleStyle.Render("Select baud rate"))
	for i, rate := range menuBaudRates {
		label := fmt.Sprintf("%d", rate)
		if rate == defaultBaudRate {
			label += " (default)"
		}
		if i == m.baudCursor {
			rows = append(rows, styles.MenuSelectedStyle.Render("▸ "+label))
		} else {
			rows = append(rows, styles.MenuItemStyle.Render("  "+label))
		}
	}
	rows = append(rows, styles.MenuHintStyle.Render("enter: connect  esc: back"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
