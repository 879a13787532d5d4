package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrFileSystem wraps log file create/open/write failures. These are
// surfaced to the operator but never tear down the connection.
var ErrFileSystem = errors.New("log file error")

// logTimestampFormat is RFC 3339 with millisecond precision.
const logTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// DefaultLogName derives a log file name from the given time, with the
// colons of the RFC 3339 timestamp replaced so the name is portable.
func DefaultLogName(t time.Time) string {
	stamp := strings.ReplaceAll(t.Format(time.RFC3339), ":", "-")
	return "serial_log_" + stamp + ".txt"
}

// Sink is an append-only text log for received lines. At most one sink
// is open per session; it is closed when logging stops or the
// connection goes away.
type Sink struct {
	path string
	file *os.File
	w    *bufio.Writer
}

// OpenSink opens (creating directories and the file as needed) an
// append-mode log file at dir/name.
func OpenSink(dir, name string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileSystem, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileSystem, err)
	}

	return &Sink{
		path: path,
		file: file,
		w:    bufio.NewWriter(file),
	}, nil
}

// Path returns the log file path.
func (s *Sink) Path() string {
	return s.path
}

// Write appends one received line as "[<timestamp>] <text>".
func (s *Sink) Write(line Line) error {
	if s.file == nil {
		return ErrFileSystem
	}
	_, err := fmt.Fprintf(s.w, "[%s] %s\n", line.Timestamp.Format(logTimestampFormat), line.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystem, err)
	}
	return nil
}

// Close flushes and releases the file handle. Safe to call twice.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}

	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	s.file = nil
	s.w = nil

	if flushErr != nil {
		return fmt.Errorf("%w: %v", ErrFileSystem, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrFileSystem, closeErr)
	}
	return nil
}
