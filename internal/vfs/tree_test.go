package vfs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/pkg/reposh"
)

type fakeLister struct {
	mu      sync.Mutex
	entries map[string][]reposh.Entry
	errs    map[string]error
	gates   map[string]chan struct{}
	calls   []string
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		entries: make(map[string][]reposh.Entry),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeLister) gate(url string) chan struct{} {
	ch := make(chan struct{})
	f.gates[url] = ch
	return ch
}

func (f *fakeLister) List(ctx context.Context, url string) ([]reposh.Entry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	gate := f.gates[url]
	entries, err := f.entries[url], f.errs[url]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return entries, err
}

func waitTree(t *testing.T, tree *Tree) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tree.Wait(ctx))
}

func TestPopulate_BuildsTree(t *testing.T) {
	lister := newFakeLister()
	lister.entries["root"] = []reposh.Entry{
		{Name: "README.md", Kind: reposh.EntryFile, URL: "api/README.md"},
		{Name: "docs", Kind: reposh.EntryDir, URL: "docs"},
		{Name: "mod", Kind: "submodule", URL: "mod"},
	}
	lister.entries["docs"] = []reposh.Entry{
		{Name: "guide.md", Kind: reposh.EntryFile, URL: "api/docs/guide.md"},
	}

	tree := Populate(context.Background(), lister, "root", logging.NewNullLogger())
	waitTree(t, tree)

	assert.True(t, tree.Ready())
	assert.False(t, tree.Offline())
	root := tree.Root()
	assert.Equal(t, StateReady, root.State())
	assert.Equal(t, []string{"README.md", "docs"}, root.Names())

	n, _ := root.Child("README.md")
	assert.Equal(t, Placeholder{URL: "api/README.md"}, n)

	n, _ = root.Child("docs")
	docs, ok := n.(*Directory)
	require.True(t, ok)
	assert.Equal(t, []string{"guide.md"}, docs.Names())
}

func TestPopulate_PendingDirectoryIsEmptyUntilListed(t *testing.T) {
	lister := newFakeLister()
	lister.entries["root"] = []reposh.Entry{{Name: "slow", Kind: reposh.EntryDir, URL: "slow"}}
	lister.entries["slow"] = []reposh.Entry{{Name: "late.txt", Kind: reposh.EntryFile}}
	gate := lister.gate("slow")

	tree := Populate(context.Background(), lister, "root", logging.NewNullLogger())

	var slow *Directory
	require.Eventually(t, func() bool {
		n, ok := tree.Root().Child("slow")
		if !ok {
			return false
		}
		slow = n.(*Directory)
		return true
	}, 2*time.Second, 5*time.Millisecond)

	assert.Empty(t, slow.Names())
	assert.Equal(t, StatePending, slow.State())
	assert.False(t, tree.Ready())

	close(gate)
	waitTree(t, tree)

	assert.Equal(t, []string{"late.txt"}, slow.Names())
	assert.Equal(t, StateReady, slow.State())
}

func TestPopulate_SubdirectoryFailureMarksFailed(t *testing.T) {
	lister := newFakeLister()
	lister.entries["root"] = []reposh.Entry{
		{Name: "broken", Kind: reposh.EntryDir, URL: "broken"},
		{Name: "ok.txt", Kind: reposh.EntryFile},
	}
	lister.errs["broken"] = errors.New("boom")

	tree := Populate(context.Background(), lister, "root", logging.NewNullLogger())
	waitTree(t, tree)

	n, _ := tree.Root().Child("broken")
	broken := n.(*Directory)
	assert.Equal(t, StateFailed, broken.State())
	assert.Empty(t, broken.Names())
	assert.Equal(t, []string{"broken", "ok.txt"}, tree.Root().Names())
	assert.False(t, tree.Offline())
}

func TestPopulate_RootFailureUsesFallback(t *testing.T) {
	lister := newFakeLister()
	lister.errs["root"] = errors.New("network down")

	tree := Populate(context.Background(), lister, "root", logging.NewNullLogger())
	waitTree(t, tree)

	assert.True(t, tree.Offline())
	assert.Equal(t, fallbackNames(t), tree.Root().Names())
}

func TestPopulate_WaitHonoursContext(t *testing.T) {
	lister := newFakeLister()
	gate := lister.gate("root")
	defer close(gate)

	tree := Populate(context.Background(), lister, "root", logging.NewNullLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tree.Wait(ctx), context.DeadlineExceeded)
}

func TestNewTree_IsReady(t *testing.T) {
	tree := NewTree(NewDirectory())
	assert.True(t, tree.Ready())
	assert.NoError(t, tree.Wait(context.Background()))
}

func fallbackNames(t *testing.T) []string {
	t.Helper()
	return NewFallbackTree().Root().Names()
}
