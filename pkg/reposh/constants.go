package reposh

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Session or command completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitRemoteUnavailable = 11 // Remote repository could not be reached
	ExitScriptFailed      = 13 // Script passed to exec --file failed to load
)

const (
	// DefaultBranch is used when neither flags, environment nor reposh.yaml name a branch.
	DefaultBranch = "main"

	// DefaultAPIURL is the GitHub REST API base used for directory listings.
	DefaultAPIURL = "https://api.github.com"

	// DefaultRawURL serves raw file content.
	DefaultRawURL = "https://raw.githubusercontent.com"

	// DefaultWebURL is the base for URLs handed to the browser by `open`.
	DefaultWebURL = "https://github.com"

	// DefaultHTTPTimeout bounds a single listing or fetch request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultInterpreterTimeout bounds a single `lua` run.
	DefaultInterpreterTimeout = 5 * time.Second

	// Prompt is printed in front of echoed input lines.
	Prompt = "$"
)
