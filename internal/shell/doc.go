// Package shell is the command engine: a registry of built-in commands,
// the dispatcher that turns an input line into output, and the script
// executors behind `bash` and `lua`.
//
// # Threading model
//
// A Session is owned by one host loop goroutine (the TUI's Update, or a
// Loop for non-interactive use). Handlers never block. A handler that
// needs remote data or an interpreter returns a Pending result carrying
// Futures; the host runs each Future on its own goroutine and hands the
// outcome back to Session.Resolve on the loop goroutine, where the
// Future's continuation may touch session state and emit output.
//
// Deferred output is appended whenever it completes, so it may interleave
// with the output of commands typed afterwards.
package shell
