package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	noop := func(*Session, []string) Result { return OK("") }

	r.Register(Command{Name: "b", Handler: noop})
	r.Register(Command{Name: "a", Args: "<x>", Handler: noop})

	assert.Equal(t, []string{"b", "a"}, r.Names())
	cmd, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "Usage: a <x>", cmd.UsageLine())

	_, ok = r.Lookup("c")
	assert.False(t, ok)

	assert.Panics(t, func() { r.Register(Command{Name: "a", Handler: noop}) })
	assert.Panics(t, func() { r.Register(Command{Name: "", Handler: noop}) })
	assert.Panics(t, func() { r.Register(Command{Name: "nil"}) })
}

func TestBuiltins_Names(t *testing.T) {
	assert.Equal(t,
		[]string{"help", "ls", "cd", "pwd", "cat", "open", "clear", "bash", "lua", "echo", "history", "exit"},
		Builtins().Names())
}

func TestResult(t *testing.T) {
	r := OK("x")
	assert.Equal(t, "x", r.Text())
	_, failed := r.Err()
	assert.False(t, failed)

	r = Failure(KindUsage, "Usage: cat <file>")
	kind, failed := r.Err()
	assert.True(t, failed)
	assert.Equal(t, KindUsage, kind)
	assert.Equal(t, "usage", kind.String())

	r = Pending(nil, nil)
	assert.False(t, r.IsPending())
	assert.Empty(t, r.Text())

	f := Defer("x", nil)
	r = Pending(f)
	assert.True(t, r.IsPending())
	assert.Equal(t, []*Future{f}, r.Futures())
}
