package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/reposh/internal/vfs"
	"github.com/vvka-141/reposh/pkg/reposh"
)

func TestRunScript_LsThenUnknown(t *testing.T) {
	root := vfs.NewDirectory()
	root.Insert("docs", vfs.NewDirectory())
	h := newHarness(t, vfs.NewTree(root))

	r := h.session.runScript("ls\nnope")
	h.loop.Start(h.session.emit(r))
	h.drain(t)

	lines := h.out.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "docs", lines[0])
	assert.Contains(t, lines[1], "nope")
	assert.Contains(t, lines[1], "not found")
}

func TestBash_CachedScript(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	lines := h.run(t, "bash script.sh")
	assert.Equal(t, []string{
		"$ bash script.sh",
		"README.md", "docs", "script.sh", "hello.lua", "src",
		"Command not found: nope",
	}, lines)
}

func TestBash_FetchedScriptWithAsyncLines(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.fetcher.content["docs/guide.md"] = "# Guide"
	h.fetcher.content["README.md"] = "#!/bin/sh\n\n# comment\ncd docs\ncat guide.md\npwd\n"

	lines := h.run(t, "bash README.md")

	require.Len(t, lines, 3)
	assert.Equal(t, "$ bash README.md", lines[0])
	assert.ElementsMatch(t, []string{"/docs", "# Guide"}, lines[1:])
	assert.Equal(t, "/docs", h.session.Position().String(), "cd inside a script moves the session")
}

func TestBash_Errors(t *testing.T) {
	h := newHarness(t, sampleTree(t))

	assert.Equal(t, []string{"$ bash", "Usage: bash <file>"}, h.run(t, "bash"))

	h.out.Clear()
	assert.Equal(t, []string{"$ bash docs", "bash: Is a directory: docs"}, h.run(t, "bash docs"))
	assert.Empty(t, h.fetcher.Calls())
}

func TestBash_SelfRecursionIsBounded(t *testing.T) {
	root := vfs.NewDirectory()
	root.Insert("loop.sh", vfs.Cached{Content: "bash loop.sh"})
	h := newHarness(t, vfs.NewTree(root))

	lines := h.run(t, "bash loop.sh")
	assert.Equal(t, []string{"$ bash loop.sh", "bash: scripts nested too deeply"}, lines)
}

func TestLua(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.fetcher.content["hello.lua"] = `print("hi")`
	h.interpreter.result = reposh.InterpreterResult{OK: true, Stdout: "hi\n"}

	lines := h.run(t, "lua hello.lua")

	assert.Equal(t, []string{"$ lua hello.lua", "hi"}, lines)
	assert.Equal(t, []string{`print("hi")`}, h.interpreter.sources)
}

func TestLua_InterpreterError(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.fetcher.content["hello.lua"] = "x("
	h.interpreter.result = reposh.InterpreterResult{ErrorMessage: "<string>:1: unexpected symbol"}

	lines := h.run(t, "lua hello.lua")
	assert.Equal(t, []string{"$ lua hello.lua", "Lua error: <string>:1: unexpected symbol"}, lines)
}

func TestLua_Errors(t *testing.T) {
	h := newHarness(t, sampleTree(t))

	assert.Equal(t, []string{"$ lua", "Usage: lua <file>"}, h.run(t, "lua"))

	h.out.Clear()
	assert.Equal(t, []string{"$ lua src", "lua: Is a directory: src"}, h.run(t, "lua src"))
	assert.Empty(t, h.interpreter.sources)
}
