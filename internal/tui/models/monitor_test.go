package models

import (
	"errors"
	"sync"
	"testing"

	serial "github.com/allbin/serialmon"
	"github.com/allbin/serialmon/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// fakePort blocks reads until closed so the session reader stays quiet
// during tests.
type fakePort struct {
	mu      sync.Mutex
	done    chan struct{}
	written []byte
}

func newFakePort() *fakePort {
	return &fakePort{done: make(chan struct{})}
}

func (p *fakePort) Read(buf []byte) (int, error) {
	<-p.done
	return 0, errors.New("port closed")
}

func (p *fakePort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, data...)
	return len(data), nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	return nil
}

func (p *fakePort) writtenString() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.written)
}

func newTestMonitor(t *testing.T, ports []serial.PortInfo) (*Monitor, *fakePort) {
	t.Helper()

	port := newFakePort()
	sess := session.New(t.TempDir(), session.WithOpener(func(path string, baudRate int) (session.Port, error) {
		return port, nil
	}))
	t.Cleanup(func() { sess.Disconnect() })

	m := NewMonitor(sess, WithPortLister(func() ([]serial.PortInfo, error) {
		return ports, nil
	}))
	return m, port
}

func pressKey(m *Monitor, keyType tea.KeyType) {
	m.Update(tea.KeyMsg{Type: keyType})
}

func equalItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMenuItemsFollowSessionState(t *testing.T) {
	m, _ := newTestMonitor(t, nil)

	if got := m.menuItems(); !equalItems(got, []string{"Connect", "Exit"}) {
		t.Errorf("Disconnected menu = %v", got)
	}

	if err := m.session.Connect("/dev/ttyUSB0", 115200); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	want := []string{"Disconnect", "Send command", "Start logging", "Exit"}
	if got := m.menuItems(); !equalItems(got, want) {
		t.Errorf("Connected menu = %v, want %v", got, want)
	}

	if _, _, err := m.session.ToggleLogging(""); err != nil {
		t.Fatalf("ToggleLogging() error = %v", err)
	}
	want = []string{"Disconnect", "Send command", "Stop logging", "Exit"}
	if got := m.menuItems(); !equalItems(got, want) {
		t.Errorf("Logging menu = %v, want %v", got, want)
	}
}

func TestConnectFlowThroughMenus(t *testing.T) {
	m, _ := newTestMonitor(t, []serial.PortInfo{
		{Name: "ttyUSB0", Path: "/dev/ttyUSB0", Description: "USB Serial Port"},
	})

	pressKey(m, tea.KeyEnter) // Connect
	if m.screen != screenPorts {
		t.Fatalf("Screen = %v, want screenPorts", m.screen)
	}

	pressKey(m, tea.KeyEnter) // pick the highlighted port
	if m.screen != screenBaud {
		t.Fatalf("Screen = %v, want screenBaud", m.screen)
	}
	if menuBaudRates[m.baudCursor] != defaultBaudRate {
		t.Errorf("Baud cursor starts at %d, want %d", menuBaudRates[m.baudCursor], defaultBaudRate)
	}

	pressKey(m, tea.KeyEnter) // connect at the default rate
	if m.screen != screenMenu {
		t.Fatalf("Screen = %v, want screenMenu", m.screen)
	}
	if !m.session.Connected() {
		t.Fatal("Expected session to be connected")
	}
	if m.session.PortPath() != "/dev/ttyUSB0" || m.session.BaudRate() != defaultBaudRate {
		t.Errorf("Connected to %s at %d, want /dev/ttyUSB0 at %d",
			m.session.PortPath(), m.session.BaudRate(), defaultBaudRate)
	}
}

func TestConnectWithNoPorts(t *testing.T) {
	m, _ := newTestMonitor(t, nil)

	pressKey(m, tea.KeyEnter) // Connect with nothing attached
	if m.screen != screenMenu {
		t.Errorf("Screen = %v, want screenMenu", m.screen)
	}
	if m.session.Connected() {
		t.Error("Expected session to stay disconnected")
	}
}

func TestBaudScreenNavigation(t *testing.T) {
	m, _ := newTestMonitor(t, []serial.PortInfo{{Name: "ttyUSB0", Path: "/dev/ttyUSB0"}})

	pressKey(m, tea.KeyEnter) // Connect
	pressKey(m, tea.KeyEnter) // pick port

	start := m.baudCursor
	pressKey(m, tea.KeyUp)
	if m.baudCursor != start-1 {
		t.Errorf("Baud cursor = %d after up, want %d", m.baudCursor, start-1)
	}
	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyDown)
	if m.baudCursor != start+1 {
		t.Errorf("Baud cursor = %d after down twice, want %d", m.baudCursor, start+1)
	}

	pressKey(m, tea.KeyEsc)
	if m.screen != screenPorts {
		t.Errorf("Screen = %v after esc, want screenPorts", m.screen)
	}
}

func TestSendPromptWritesToPort(t *testing.T) {
	m, port := newTestMonitor(t, []serial.PortInfo{{Name: "ttyUSB0", Path: "/dev/ttyUSB0"}})
	if err := m.session.Connect("/dev/ttyUSB0", 115200); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	pressKey(m, tea.KeyDown)  // Disconnect -> Send command
	pressKey(m, tea.KeyEnter) // open the prompt
	if m.screen != screenPromptSend {
		t.Fatalf("Screen = %v, want screenPromptSend", m.screen)
	}

	m.prompt.SetValue("AT+GMR")
	pressKey(m, tea.KeyEnter)

	if got := port.writtenString(); got != "AT+GMR\r\n" {
		t.Errorf("Written = %q, want %q", got, "AT+GMR\r\n")
	}
	if m.screen != screenMenu {
		t.Errorf("Screen = %v after send, want screenMenu", m.screen)
	}
}

func TestPromptEscCancels(t *testing.T) {
	m, port := newTestMonitor(t, nil)
	if err := m.session.Connect("/dev/ttyUSB0", 115200); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyEnter)
	m.prompt.SetValue("should not be sent")
	pressKey(m, tea.KeyEsc)

	if m.screen != screenMenu {
		t.Errorf("Screen = %v after esc, want screenMenu", m.screen)
	}
	if got := port.writtenString(); got != "" {
		t.Errorf("Port received %q, want nothing", got)
	}
}

func TestConnectionLossResetsToMenu(t *testing.T) {
	m, _ := newTestMonitor(t, nil)
	if err := m.session.Connect("/dev/ttyUSB0", 115200); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	// Operator is mid-prompt when the device disappears.
	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyEnter)
	if m.screen != screenPromptSend {
		t.Fatalf("Screen = %v, want screenPromptSend", m.screen)
	}

	m.Update(PortEventMsg{Kind: session.EventErrored, Err: errors.New("device gone")})

	if m.session.Connected() {
		t.Error("Expected session to be disconnected after port error")
	}
	if m.screen != screenMenu {
		t.Errorf("Screen = %v, want screenMenu", m.screen)
	}
	if got := m.menuItems(); !equalItems(got, []string{"Connect", "Exit"}) {
		t.Errorf("Menu after loss = %v", got)
	}
}

func TestStartLoggingViaPrompt(t *testing.T) {
	m, _ := newTestMonitor(t, nil)
	if err := m.session.Connect("/dev/ttyUSB0", 115200); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyDown) // Start logging
	pressKey(m, tea.KeyEnter)
	if m.screen != screenPromptLog {
		t.Fatalf("Screen = %v, want screenPromptLog", m.screen)
	}

	m.prompt.SetValue("capture.txt")
	pressKey(m, tea.KeyEnter)

	if !m.session.LoggingActive() {
		t.Error("Expected logging to be active")
	}

	// The cursor is still on the logging slot, which now reads Stop.
	pressKey(m, tea.KeyEnter)
	if m.session.LoggingActive() {
		t.Error("Expected logging to be stopped")
	}
}
