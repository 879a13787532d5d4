package session

import (
	"bytes"
	"time"
)

// lineDelimiter terminates one logical message in the incoming stream.
const lineDelimiter = "\r\n"

// Line is one completed message from the port, stamped at the moment
// the closing delimiter was observed.
type Line struct {
	Text      string
	Timestamp time.Time
}

// LineFramer converts an unbounded byte stream into discrete lines,
// splitting on lineDelimiter and discarding the delimiter itself. A
// trailing partial line is buffered across reads until the delimiter
// arrives; whatever remains when the port closes is dropped.
type LineFramer struct {
	buf []byte
	now func() time.Time
}

// NewLineFramer returns a framer using wall-clock timestamps.
func NewLineFramer() *LineFramer {
	return &LineFramer{now: time.Now}
}

// Push feeds raw bytes into the framer and returns the lines completed
// by this chunk, in arrival order.
func (f *LineFramer) Push(data []byte) []Line {
	if len(data) == 0 {
		return nil
	}
	f.buf = append(f.buf, data...)

	var lines []Line
	for {
		i := bytes.Index(f.buf, []byte(lineDelimiter))
		if i < 0 {
			break
		}
		lines = append(lines, Line{
			Text:      string(f.buf[:i]),
			Timestamp: f.now(),
		})
		f.buf = f.buf[i+len(lineDelimiter):]
	}
	return lines
}

// Pending returns a copy of the buffered unterminated tail.
func (f *LineFramer) Pending() []byte {
	return append([]byte(nil), f.buf...)
}

// Reset discards any buffered partial line.
func (f *LineFramer) Reset() {
	f.buf = nil
}
