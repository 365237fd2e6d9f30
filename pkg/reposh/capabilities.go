package reposh

import "context"

// EntryKind distinguishes files from directories in a remote listing.
type EntryKind string

const (
	EntryFile EntryKind = "file"
	EntryDir  EntryKind = "dir"
)

// Entry is one item of a remote directory listing.
type Entry struct {
	Name string
	Kind EntryKind
	// URL is the listing URL for directories and the API URL for files.
	URL string
}

// Lister lists a remote directory. Only used while populating the VFS.
type Lister interface {
	List(ctx context.Context, url string) ([]Entry, error)
}

// Fetcher returns the text of a repository file addressed by its
// slash-separated path relative to the repository root.
type Fetcher interface {
	FetchText(ctx context.Context, path string) (string, error)
}

// Locator builds human-facing URLs for repository paths.
type Locator interface {
	BrowseURL(path string) string
}

// Opener asks the host environment to open a URL in a new context.
// Callers do not wait for, or consume, anything beyond the returned error.
type Opener interface {
	Open(url string) error
}

// InterpreterResult is the outcome of running a script through an
// external interpreter.
type InterpreterResult struct {
	OK           bool
	Stdout       string
	ErrorMessage string
}

// Interpreter runs script source text and captures its standard output.
// Resource limits and sandboxing are the implementation's responsibility.
type Interpreter interface {
	Run(ctx context.Context, source string) InterpreterResult
}

// Sink receives shell output one line (or block) at a time.
// Implementations that render text must neutralise markup or escape
// sequences before display.
type Sink interface {
	AppendLine(text string)
	Clear()
}
