package components

import (
	"strings"
	"testing"
	"time"

	"github.com/allbin/serialmon/internal/session"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"tab preserved", "a\tb", "a\tb"},
		{"escape replaced", "a\x1b[31mb", "a·[31mb"},
		{"bell replaced", "ding\x07", "ding·"},
		{"del replaced", "x\x7fy", "x·y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize(tt.in); got != tt.want {
				t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTerminalAddLines(t *testing.T) {
	term := NewTerminal(80, 24)

	term.AddLines([]session.Line{
		{Text: "one", Timestamp: time.Now()},
		{Text: "two", Timestamp: time.Now()},
	})
	term.AddNotice("connected")

	if len(term.lines) != 3 {
		t.Errorf("Line count = %d, want 3", len(term.lines))
	}
	if !strings.Contains(term.lines[0], "one") {
		t.Errorf("First line %q missing text", term.lines[0])
	}

	term.Clear()
	if len(term.lines) != 0 {
		t.Errorf("Line count after Clear = %d, want 0", len(term.lines))
	}
}
