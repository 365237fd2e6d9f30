package shell

import (
	"context"
)

type completion struct {
	future *Future
	text   string
	err    error
}

// Loop drives a session without a terminal UI. Futures run on their own
// goroutines; their outcomes are applied on the goroutine calling Drain.
type Loop struct {
	ctx         context.Context
	session     *Session
	done        chan completion
	outstanding int
}

// NewLoop creates a loop for s. ctx bounds every future it starts.
func NewLoop(ctx context.Context, s *Session) *Loop {
	return &Loop{
		ctx:     ctx,
		session: s,
		done:    make(chan completion),
	}
}

// Submit records and dispatches line, starting any futures it returns.
func (l *Loop) Submit(line string) {
	l.Start(l.session.Submit(line))
}

// Start runs futures in the background.
func (l *Loop) Start(futures []*Future) {
	for _, f := range futures {
		l.outstanding++
		go func(f *Future) {
			text, err := f.Run(l.ctx)
			select {
			case l.done <- completion{future: f, text: text, err: err}:
			case <-l.ctx.Done():
			}
		}(f)
	}
}

// Drain applies completions until no futures remain, including those
// started by continuations, or until ctx ends.
func (l *Loop) Drain(ctx context.Context) error {
	for l.outstanding > 0 {
		select {
		case c := <-l.done:
			l.outstanding--
			l.Start(l.session.Resolve(c.future, c.text, c.err))
		case <-ctx.Done():
			return ctx.Err()
		case <-l.ctx.Done():
			return l.ctx.Err()
		}
	}
	return nil
}
