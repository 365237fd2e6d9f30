package shell

import "context"

// ErrorKind classifies a failed command. No kind is fatal to the session.
type ErrorKind int

const (
	KindUsage ErrorKind = iota + 1
	KindResolution
	KindRemote
	KindInterpreter
	KindUnknownCommand
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindResolution:
		return "resolution"
	case KindRemote:
		return "remote"
	case KindInterpreter:
		return "interpreter"
	case KindUnknownCommand:
		return "unknown command"
	case KindInternal:
		return "internal"
	default:
		return "none"
	}
}

type resultKind int

const (
	resultOK resultKind = iota
	resultPending
	resultFailed
)

// Result is what a handler returns: immediate text, a failure, or
// deferred work. The zero Result is OK with no output.
type Result struct {
	kind    resultKind
	text    string
	errKind ErrorKind
	futures []*Future
}

// OK is a successful result. Empty text produces no output line.
func OK(text string) Result {
	return Result{kind: resultOK, text: text}
}

// Failure is a failed result whose message is shown as output.
func Failure(kind ErrorKind, message string) Result {
	return Result{kind: resultFailed, text: message, errKind: kind}
}

// Pending defers output to futures. Nil futures are dropped; with none
// left the result is OK with no output.
func Pending(futures ...*Future) Result {
	var live []*Future
	for _, f := range futures {
		if f != nil {
			live = append(live, f)
		}
	}
	if len(live) == 0 {
		return Result{}
	}
	return Result{kind: resultPending, futures: live}
}

// Text returns the output text of an OK or failed result.
func (r Result) Text() string { return r.text }

// IsPending reports whether the result carries futures.
func (r Result) IsPending() bool { return r.kind == resultPending }

// Futures returns the deferred work of a Pending result.
func (r Result) Futures() []*Future { return r.futures }

// Err returns the error kind of a failed result.
func (r Result) Err() (ErrorKind, bool) {
	return r.errKind, r.kind == resultFailed
}

// Future is a computation run off the session loop. Its continuations run
// back on the loop through Session.Resolve.
type Future struct {
	Label string
	run   func(ctx context.Context) (string, error)
	then  func(text string) Result
	catch func(err error) Result
}

// Defer creates a future around run.
func Defer(label string, run func(ctx context.Context) (string, error)) *Future {
	return &Future{Label: label, run: run}
}

// Then sets the continuation applied to a successful outcome.
// Without one the text is shown as is.
func (f *Future) Then(fn func(text string) Result) *Future {
	f.then = fn
	return f
}

// Catch sets the continuation applied to a failed outcome.
// Without one the failure is shown as "Error: <message>".
func (f *Future) Catch(fn func(err error) Result) *Future {
	f.catch = fn
	return f
}

// Run executes the deferred computation. Safe to call from any goroutine.
func (f *Future) Run(ctx context.Context) (string, error) {
	return f.run(ctx)
}
