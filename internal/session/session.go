// Package session implements the connect/disconnect/logging state
// machine at the heart of serialmon, together with the line framer and
// the append-only log sink.
//
// A Session owns at most one open port and at most one log sink at any
// time. Port events are funneled through a single channel; all Session
// methods, including HandleEvent, must be called from one goroutine
// (the menu loop or the headless capture loop), which is what makes
// the state machine lock-free.
package session

import (
	"errors"
	"fmt"
	"time"

	serial "github.com/allbin/serialmon"
)

var (
	// ErrNotConnected is returned by operations that require an open port.
	ErrNotConnected = errors.New("not connected")
	// ErrAlreadyConnected is returned by Connect while a port is open.
	ErrAlreadyConnected = errors.New("already connected")
	// ErrWrite wraps a failed port write. The session stays connected;
	// if the port is truly gone the reader reports it independently.
	ErrWrite = errors.New("serial write failed")
	// ErrPortRuntime wraps an asynchronous port failure after open.
	ErrPortRuntime = errors.New("serial port error")
)

// State is the session connection state.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// Port is the minimal surface the session needs from an open serial
// port. *serial.Port satisfies it; tests substitute a mock.
type Port interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
}

// OpenFunc opens a port at the given path and baud rate.
type OpenFunc func(path string, baudRate int) (Port, error)

func defaultOpen(path string, baudRate int) (Port, error) {
	return serial.Open(path, serial.WithBaudRate(baudRate))
}

// Option configures a Session.
type Option func(*Session)

// WithOpener replaces the port opener, used by tests.
func WithOpener(open OpenFunc) Option {
	return func(s *Session) {
		s.open = open
	}
}

// Session holds the single active connection (or none) and the single
// active log sink (or none).
type Session struct {
	open   OpenFunc
	logDir string

	state    State
	port     Port
	portPath string
	baudRate int

	framer *LineFramer
	sink   *Sink

	events chan Event
	done   chan struct{}
}

// New creates a disconnected session. Log files are placed under logDir.
func New(logDir string, opts ...Option) *Session {
	s := &Session{
		open:   defaultOpen,
		logDir: logDir,
		framer: NewLineFramer(),
		events: make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current connection state.
func (s *Session) State() State {
	return s.state
}

// Connected reports whether a port is open.
func (s *Session) Connected() bool {
	return s.state == StateConnected
}

// PortPath returns the path of the connected port, or "".
func (s *Session) PortPath() string {
	return s.portPath
}

// BaudRate returns the baud rate of the connected port, or 0.
func (s *Session) BaudRate() int {
	if s.state != StateConnected {
		return 0
	}
	return s.baudRate
}

// LoggingActive reports whether a log sink is bound.
func (s *Session) LoggingActive() bool {
	return s.sink != nil
}

// LogPath returns the active log file path, or "".
func (s *Session) LogPath() string {
	if s.sink == nil {
		return ""
	}
	return s.sink.Path()
}

// Events returns the single-consumer port event channel.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Connect opens the port at 8N1 with the given baud rate and starts the
// reader. Valid only while disconnected; a failed open leaves the
// session disconnected.
func (s *Session) Connect(path string, baudRate int) error {
	if s.state == StateConnected {
		return ErrAlreadyConnected
	}

	port, err := s.open(path, baudRate)
	if err != nil {
		return err
	}

	s.port = port
	s.portPath = path
	s.baudRate = baudRate
	s.state = StateConnected
	s.framer.Reset()
	s.done = make(chan struct{})

	go s.readLoop(port, s.done)

	s.emit(s.done, Event{Kind: EventOpened})
	return nil
}

// Disconnect closes the port and any open log sink (flush then close).
// A no-op when already disconnected.
func (s *Session) Disconnect() error {
	if s.state == StateDisconnected {
		return nil
	}

	s.state = StateDisconnected
	s.portPath = ""
	if s.done != nil {
		close(s.done)
		s.done = nil
	}

	var firstErr error
	if s.port != nil {
		if err := s.port.Close(); err != nil && !errors.Is(err, serial.ErrPortClosed) {
			firstErr = err
		}
		s.port = nil
	}

	// Unterminated tail is dropped; this is a monitor, not a transfer
	// protocol.
	s.framer.Reset()

	if err := s.closeSink(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Send writes the command followed by the line terminator. A write
// failure leaves the session connected; if the device is actually gone
// the reader's error event triggers the disconnect.
func (s *Session) Send(command string) error {
	if s.state != StateConnected {
		return ErrNotConnected
	}
	if _, err := s.port.Write([]byte(command + lineDelimiter)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// ToggleLogging starts logging to fileName (default name when empty)
// or, if a sink is already bound, flushes and closes it. Returns
// whether logging is now active and the active log path.
func (s *Session) ToggleLogging(fileName string) (active bool, path string, err error) {
	if s.sink != nil {
		return false, "", s.closeSink()
	}

	if s.state != StateConnected {
		return false, "", ErrNotConnected
	}

	if fileName == "" {
		fileName = DefaultLogName(time.Now())
	}
	sink, err := OpenSink(s.logDir, fileName)
	if err != nil {
		return false, "", err
	}
	s.sink = sink
	return true, sink.Path(), nil
}

// HandleEvent applies one port event to the session. Data events return
// the completed lines (already written to the log sink when logging is
// on). Errored and Closed events force-disconnect the session, closing
// the port handle and any open sink.
//
// The returned error is non-fatal and meant for operator display: a
// best-effort log write failure or the runtime port error.
func (s *Session) HandleEvent(ev Event) ([]Line, error) {
	switch ev.Kind {
	case EventData:
		if s.state != StateConnected {
			return nil, nil
		}
		lines := s.framer.Push(ev.Data)
		var writeErr error
		if s.sink != nil {
			for _, line := range lines {
				if err := s.sink.Write(line); err != nil && writeErr == nil {
					writeErr = err
				}
			}
		}
		return lines, writeErr

	case EventErrored:
		s.Disconnect()
		return nil, fmt.Errorf("%w: %v", ErrPortRuntime, ev.Err)

	case EventClosed:
		return nil, s.Disconnect()
	}
	return nil, nil
}

func (s *Session) closeSink() error {
	if s.sink == nil {
		return nil
	}
	err := s.sink.Close()
	s.sink = nil
	return err
}

// readLoop pumps port bytes into the event channel until the port is
// closed or fails. It never touches session state directly.
func (s *Session) readLoop(port Port, done chan struct{}) {
	buf := make([]byte, 4096)
	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := port.Read(buf)
		if err != nil {
			select {
			case <-done:
				// Closed by Disconnect; not a runtime failure.
				return
			default:
			}
			s.emit(done, Event{Kind: EventErrored, Err: err})
			return
		}
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			s.emit(done, Event{Kind: EventData, Data: data})
		}
	}
}

func (s *Session) emit(done chan struct{}, ev Event) {
	select {
	case s.events <- ev:
	case <-done:
	}
}
