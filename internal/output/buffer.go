package output

import (
	"strings"
	"sync"
)

// DefaultScrollback is the number of lines a Buffer keeps by default.
const DefaultScrollback = 5000

// Buffer is an in-memory Sink holding the most recent lines.
// Safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	version uint64
}

// NewBuffer creates a buffer keeping at most limit lines (DefaultScrollback if limit <= 0).
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultScrollback
	}
	return &Buffer{limit: limit}
}

// AppendLine sanitises text and appends it. Multi-line text is split so
// the scrollback limit counts rendered lines.
func (b *Buffer) AppendLine(text string) {
	lines := strings.Split(Sanitize(text), "\n")

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, lines...)
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0:0], b.lines[over:]...)
	}
	b.version++
}

// Clear drops every line.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.version++
}

// Lines returns a copy of the buffered lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// String joins the buffered lines with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Version changes every time the buffer changes.
func (b *Buffer) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}
