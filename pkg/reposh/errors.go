package reposh

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for process-level failures.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := cli.Execute()
//	if errors.Is(err, reposh.ErrInvalidConfig) {
//	    // Handle a broken reposh.yaml
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRemoteUnavailable indicates the remote repository could not be listed or fetched.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrScriptFailed indicates a script given to `exec --file` could not be read.
	ErrScriptFailed = errors.New("script failed")

	// ErrNotFound indicates a remote object does not exist.
	ErrNotFound = errors.New("not found")
)

// StatusError is returned by remote capabilities when the server answers
// with a non-success HTTP status.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %d", e.URL, e.Code)
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 120 {
			body = body[:120] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// Unwrap maps 404 responses onto ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Code == 404 {
		return ErrNotFound
	}
	return nil
}

var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"arg(s), received",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrRemoteUnavailable):
		return ExitRemoteUnavailable
	case errors.Is(err, ErrScriptFailed):
		return ExitScriptFailed
	}

	// cobra reports argument and flag problems as plain errors
	errStr := err.Error()
	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
