// Package history keeps submitted command lines and a recall cursor.
package history

import "strings"

// History is an append-only list of submitted lines with a cursor in
// [0, len]. A cursor equal to len means "past the newest entry".
// Not safe for concurrent use; it belongs to one session loop.
type History struct {
	entries []string
	cursor  int
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Submit appends line and moves the cursor past the end.
// Blank lines are ignored.
func (h *History) Submit(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// RecallPrevious steps back one entry. It returns false, leaving the
// cursor alone, when already at the oldest entry.
func (h *History) RecallPrevious() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// RecallNext steps forward one entry. Stepping past the newest entry
// returns "" so the caller clears its input; with nothing to step to it
// returns false.
func (h *History) RecallNext() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Entries returns a copy of all submitted lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
