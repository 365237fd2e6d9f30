package shell

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/vvka-141/reposh/pkg/reposh"
)

// Submit records line in history and dispatches it.
func (s *Session) Submit(line string) []*Future {
	s.history.Submit(line)
	return s.Dispatch(line)
}

// Dispatch echoes line, runs its command and returns any futures the host
// loop must run. Blank lines do nothing.
func (s *Session) Dispatch(line string) []*Future {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	s.print(reposh.Prompt + " " + line)
	s.logger.Verbose("[%s] %s", s.shortID(), line)
	return s.execute(line)
}

// Resolve applies a finished future's outcome on the loop goroutine and
// returns any follow-up futures.
func (s *Session) Resolve(f *Future, text string, err error) []*Future {
	if err != nil {
		s.logger.Verbose("[%s] %s failed: %v", s.shortID(), f.Label, err)
		if f.catch == nil {
			s.print("Error: " + err.Error())
			return nil
		}
		return s.emit(s.guard(f.Label, func() Result { return f.catch(err) }))
	}
	if f.then == nil {
		return s.emit(OK(text))
	}
	return s.emit(s.guard(f.Label, func() Result { return f.then(text) }))
}

// execute runs one tokenized line without echoing it.
func (s *Session) execute(line string) []*Future {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, ok := s.registry.Lookup(fields[0])
	if !ok {
		return s.emit(Failure(KindUnknownCommand, "Command not found: "+fields[0]))
	}
	args := fields[1:]
	return s.emit(s.guard(cmd.Name, func() Result { return cmd.Handler(s, args) }))
}

// guard converts a panic in fn into a failed result.
func (s *Session) guard(label string, fn func() Result) (r Result) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("[%s] %s panicked: %v\n%s", s.shortID(), label, p, debug.Stack())
			r = Failure(KindInternal, fmt.Sprintf("Error: %v", p))
		}
	}()
	return fn()
}

func (s *Session) emit(r Result) []*Future {
	switch r.kind {
	case resultPending:
		return r.futures
	default:
		if text := strings.TrimSuffix(r.text, "\n"); text != "" {
			s.print(text)
		}
		return nil
	}
}

func (s *Session) shortID() string {
	return s.id.String()[:8]
}
