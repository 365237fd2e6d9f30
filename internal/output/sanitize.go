// Package output provides the shell's output sinks.
//
// All sinks sanitise text before it is stored or written: ANSI escape
// sequences and other control characters are removed so that remote file
// content cannot move the cursor, recolour or retitle the terminal.
package output

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize strips escape sequences and control characters, keeping newlines and tabs.
// Carriage returns are dropped so CRLF content renders as plain lines.
func Sanitize(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, text)
}
