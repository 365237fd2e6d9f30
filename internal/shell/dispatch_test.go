package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_UnknownCommand(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.run(t, "cd docs")
	before := h.session.Position()
	h.out.Clear()

	lines := h.run(t, "foo bar")

	require.Len(t, lines, 2)
	assert.Equal(t, "$ foo bar", lines[0])
	assert.Contains(t, lines[1], "foo")
	assert.Contains(t, lines[1], "not found")
	assert.True(t, before.Equal(h.session.Position()))
	assert.Empty(t, h.fetcher.Calls())
}

func TestDispatch_BlankLineIsIgnored(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	assert.Nil(t, h.session.Dispatch("   "))
	assert.Empty(t, h.out.Lines())
}

func TestDispatch_ExtraWhitespace(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	lines := h.run(t, "  echo   a  b ")
	assert.Equal(t, []string{"$   echo   a  b ", "a b"}, lines)
}

func TestDispatch_RecoversPanics(t *testing.T) {
	reg := Builtins()
	reg.Register(Command{Name: "boom", Handler: func(*Session, []string) Result {
		panic("kaboom")
	}})

	h := newHarness(t, sampleTree(t))
	h.session.registry = reg

	lines := h.run(t, "boom", "pwd")
	assert.Equal(t, []string{"$ boom", "Error: kaboom", "$ pwd", "/"}, lines)
}

func TestResolve_RejectedFuture(t *testing.T) {
	reg := Builtins()
	reg.Register(Command{Name: "fail", Handler: func(*Session, []string) Result {
		return Pending(Defer("fail", func(context.Context) (string, error) {
			return "", errors.New("remote went away")
		}))
	}})

	h := newHarness(t, sampleTree(t))
	h.session.registry = reg

	lines := h.run(t, "fail")
	assert.Equal(t, []string{"$ fail", "Error: remote went away"}, lines)
}

func TestResolve_PanickingContinuation(t *testing.T) {
	reg := Builtins()
	reg.Register(Command{Name: "later", Handler: func(*Session, []string) Result {
		return Pending(Defer("later", func(context.Context) (string, error) {
			return "x", nil
		}).Then(func(string) Result { panic("bad continuation") }))
	}})

	h := newHarness(t, sampleTree(t))
	h.session.registry = reg

	lines := h.run(t, "later")
	assert.Equal(t, []string{"$ later", "Error: bad continuation"}, lines)
}

func TestDispatch_DeferredOutputInterleaves(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.fetcher.content["README.md"] = "readme body"
	h.fetcher.gate = make(chan struct{})

	h.loop.Submit("cat README.md")
	h.loop.Submit("pwd")
	assert.Equal(t, []string{"$ cat README.md", "$ pwd", "/"}, h.out.Lines())
	assert.Equal(t, 1, h.loop.outstanding)

	close(h.fetcher.gate)
	h.drain(t)
	assert.Equal(t, []string{"$ cat README.md", "$ pwd", "/", "readme body"}, h.out.Lines())
}

func TestSubmit_RecordsHistory(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.run(t, "ls", "help")

	line, ok := h.session.History().RecallPrevious()
	require.True(t, ok)
	assert.Equal(t, "help", line)
	line, _ = h.session.History().RecallPrevious()
	assert.Equal(t, "ls", line)
	_, ok = h.session.History().RecallPrevious()
	assert.False(t, ok)
}

func TestSessions_AreIndependent(t *testing.T) {
	a := newHarness(t, sampleTree(t))
	b := newHarness(t, sampleTree(t))

	a.run(t, "cd docs")
	assert.Equal(t, "/docs", a.session.Position().String())
	assert.Equal(t, "/", b.session.Position().String())
	assert.NotEqual(t, a.session.ID(), b.session.ID())
}
