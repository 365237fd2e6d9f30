package output

import (
	"fmt"
	"io"
	"sync"
)

// WriterSink writes sanitised lines straight to an io.Writer.
// Clear is a no-op; non-interactive output is never erased.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) AppendLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, Sanitize(text))
}

func (s *WriterSink) Clear() {}
