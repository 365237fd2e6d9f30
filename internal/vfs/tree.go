package vfs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/pkg/reposh"
)

// Tree owns a root directory and tracks outstanding remote listings.
type Tree struct {
	root    *Directory
	logger  reposh.Logger
	wg      sync.WaitGroup
	done    chan struct{}
	offline atomic.Bool
}

// NewTree wraps an already-built root. The tree is immediately ready.
func NewTree(root *Directory) *Tree {
	t := &Tree{root: root, done: make(chan struct{})}
	close(t.done)
	return t
}

// NewFallbackTree returns a ready tree holding the built-in offline content.
func NewFallbackTree() *Tree {
	root := NewDirectory()
	if err := loadFallback(root); err != nil {
		// The fallback is compiled into the binary; failing to read it is a build defect.
		panic(err)
	}
	t := NewTree(root)
	t.offline.Store(true)
	return t
}

// Populate lists rootURL in the background and returns at once.
// Subdirectories are listed recursively as they are discovered. If the
// root listing fails, the root is filled with the built-in fallback tree.
func Populate(ctx context.Context, lister reposh.Lister, rootURL string, logger reposh.Logger) *Tree {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	t := &Tree{
		root:   newPendingDirectory(),
		logger: logger,
		done:   make(chan struct{}),
	}

	t.wg.Add(1)
	go t.expand(ctx, lister, t.root, rootURL, true)
	go func() {
		t.wg.Wait()
		close(t.done)
	}()

	return t
}

func (t *Tree) expand(ctx context.Context, lister reposh.Lister, dir *Directory, url string, isRoot bool) {
	defer t.wg.Done()

	entries, err := lister.List(ctx, url)
	if err != nil {
		if isRoot {
			t.logger.Error("Listing repository root failed, using built-in tree: %v", err)
			if ferr := loadFallback(dir); ferr != nil {
				t.logger.Error("Loading built-in tree: %v", ferr)
			}
			t.offline.Store(true)
			dir.setState(StateReady)
			return
		}
		t.logger.Error("Listing %s failed: %v", url, err)
		dir.setState(StateFailed)
		return
	}

	for _, entry := range entries {
		switch entry.Kind {
		case reposh.EntryDir:
			child := newPendingDirectory()
			if dir.Insert(entry.Name, child) {
				t.wg.Add(1)
				go t.expand(ctx, lister, child, entry.URL, false)
			}
		case reposh.EntryFile:
			dir.Insert(entry.Name, Placeholder{URL: entry.URL})
		default:
			t.logger.Verbose("Skipping %s (%s)", entry.Name, entry.Kind)
		}
	}

	dir.setState(StateReady)
	t.logger.Verbose("Listed %s: %d entries", url, len(entries))
}

// Root returns the root directory.
func (t *Tree) Root() *Directory {
	return t.root
}

// Ready reports whether every listing has completed.
func (t *Tree) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done is closed once every listing has completed.
func (t *Tree) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the tree is fully populated or ctx ends.
func (t *Tree) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Offline reports whether the tree holds the built-in content instead of the remote repository.
func (t *Tree) Offline() bool {
	return t.offline.Load()
}
