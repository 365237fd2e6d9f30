// Package luarun runs Lua scripts with gopher-lua in a restricted state.
//
// Only the base, table, string and math libraries are loaded; os, io and
// package are absent, and dofile/loadfile are removed. print writes to a
// captured buffer. Each run gets a fresh state and a deadline.
package luarun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vvka-141/reposh/pkg/reposh"
)

// DefaultMaxOutput caps captured output per run.
const DefaultMaxOutput = 1 << 20

// Interpreter implements reposh.Interpreter.
type Interpreter struct {
	timeout   time.Duration
	maxOutput int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxOutput caps the bytes a script may print.
func WithMaxOutput(n int) Option {
	return func(i *Interpreter) {
		i.maxOutput = n
	}
}

// New creates an interpreter that stops scripts after timeout.
func New(timeout time.Duration, opts ...Option) *Interpreter {
	if timeout <= 0 {
		timeout = reposh.DefaultInterpreterTimeout
	}
	i := &Interpreter{timeout: timeout, maxOutput: DefaultMaxOutput}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes source. Output printed before a failure is kept in Stdout.
func (i *Interpreter) Run(ctx context.Context, source string) reposh.InterpreterResult {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := openLibs(L); err != nil {
		return reposh.InterpreterResult{ErrorMessage: err.Error()}
	}

	var out bytes.Buffer
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for n := 1; n <= top; n++ {
			if n > 1 {
				out.WriteByte('\t')
			}
			out.WriteString(L.ToStringMeta(L.Get(n)).String())
		}
		out.WriteByte('\n')
		if out.Len() > i.maxOutput {
			L.RaiseError("output exceeds %d bytes", i.maxOutput)
		}
		return 0
	}))

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()
	L.SetContext(ctx)

	if err := L.DoString(source); err != nil {
		return reposh.InterpreterResult{
			Stdout:       out.String(),
			ErrorMessage: i.errorMessage(ctx, err),
		}
	}
	return reposh.InterpreterResult{OK: true, Stdout: out.String()}
}

func openLibs(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("failed to open %s library: %w", lib.name, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

func (i *Interpreter) errorMessage(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("script exceeded %v", i.timeout)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return "script cancelled"
	}

	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return strings.TrimSpace(apiErr.Object.String())
	}
	return err.Error()
}
