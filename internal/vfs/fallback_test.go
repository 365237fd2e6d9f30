package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallbackTree(t *testing.T) {
	tree := NewFallbackTree()

	assert.True(t, tree.Ready())
	assert.True(t, tree.Offline())

	root := tree.Root()
	assert.Equal(t, []string{"documents", "hello.lua", "notes.txt", "photos", "script.sh"}, root.Names())

	n, ok := root.Child("documents")
	require.True(t, ok)
	docs, ok := n.(*Directory)
	require.True(t, ok)
	assert.Equal(t, []string{"welcome.txt"}, docs.Names())

	n, _ = docs.Child("welcome.txt")
	welcome, ok := n.(Cached)
	require.True(t, ok, "fallback files are cached")
	assert.True(t, strings.HasPrefix(welcome.Content, "Welcome to reposh."))
}

func TestNewFallbackTree_IndependentCopies(t *testing.T) {
	a := NewFallbackTree()
	b := NewFallbackTree()

	a.Root().Insert("extra", Cached{})
	assert.NotContains(t, b.Root().Names(), "extra")
}
