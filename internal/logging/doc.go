// Package logging provides concrete implementations of the reposh.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to an io.Writer (stderr by default)
//   - NullLogger: Discards all messages (useful for testing)
//
// The interactive shell owns the terminal, so it routes a ConsoleLogger to a
// log file instead of stderr when verbose output is requested.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
