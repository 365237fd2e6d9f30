package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/vvka-141/reposh/internal/pathres"
)

// maxScriptDepth bounds scripts that run other scripts, including themselves.
const maxScriptDepth = 16

var errNoInterpreter = errors.New("interpreter unavailable")

func bashCommand(s *Session, args []string) Result {
	if len(args) == 0 {
		return usage(s, "bash")
	}
	target, err := pathres.ResolveFile(s.tree.Root(), s.pos, args[0])
	if err != nil {
		return Failure(KindResolution, "bash: "+err.Error())
	}
	return s.withContent(target, s.runScript)
}

func luaCommand(s *Session, args []string) Result {
	if len(args) == 0 {
		return usage(s, "lua")
	}
	target, err := pathres.ResolveFile(s.tree.Root(), s.pos, args[0])
	if err != nil {
		return Failure(KindResolution, "lua: "+err.Error())
	}
	return s.withContent(target, s.interpret)
}

// runScript runs each line of text as a command, in order, without echo.
// Blank lines and lines starting with '#' are skipped. A failing line
// never stops the script. Futures from asynchronous lines are returned
// together and complete in any order.
func (s *Session) runScript(text string) Result {
	if s.scriptDepth >= maxScriptDepth {
		return Failure(KindUsage, "bash: scripts nested too deeply")
	}
	s.scriptDepth++
	defer func() { s.scriptDepth-- }()

	var pending []*Future
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pending = append(pending, s.execute(line)...)
	}
	return Pending(pending...)
}

// interpret hands the whole source to the interpreter off the loop.
func (s *Session) interpret(source string) Result {
	if s.interpreter == nil {
		return Failure(KindInterpreter, "Lua error: "+errNoInterpreter.Error())
	}

	interpreter := s.interpreter
	return Pending(
		Defer("lua", func(ctx context.Context) (string, error) {
			res := interpreter.Run(ctx, source)
			if !res.OK {
				return "", errors.New(res.ErrorMessage)
			}
			return res.Stdout, nil
		}).
			Catch(func(err error) Result {
				return Failure(KindInterpreter, "Lua error: "+err.Error())
			}),
	)
}
