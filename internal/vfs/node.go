package vfs

import (
	"sync"
)

// Node is a sealed variant: *Directory, Placeholder or Cached.
type Node interface {
	node()
}

// Placeholder marks a file whose content must be fetched on demand.
type Placeholder struct {
	// URL is what the remote listing reported for the file. Content is
	// fetched by repository path, so it is informational only.
	URL string
}

// Cached is a file whose content has already been fetched.
type Cached struct {
	Content string
}

func (Placeholder) node() {}
func (Cached) node()      {}
func (*Directory) node()  {}

// State describes how far a directory's remote listing has progressed.
type State int

const (
	StateReady State = iota
	StatePending
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	default:
		return "ready"
	}
}

// Directory maps unique names to nodes and remembers insertion order.
// Safe for concurrent use.
type Directory struct {
	mu       sync.RWMutex
	children map[string]Node
	order    []string
	state    State
}

// NewDirectory creates an empty directory in StateReady.
func NewDirectory() *Directory {
	return &Directory{children: make(map[string]Node)}
}

func newPendingDirectory() *Directory {
	d := NewDirectory()
	d.state = StatePending
	return d
}

// Child returns the node stored under name.
func (d *Directory) Child(name string) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.children[name]
	return n, ok
}

// Names returns child names in insertion order.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Len returns the number of children.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// Insert adds a child if the name is free and reports whether it did.
// Existing entries are never overwritten.
func (d *Directory) Insert(name string, n Node) bool {
	if name == "" || n == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.children[name]; exists {
		return false
	}
	d.children[name] = n
	d.order = append(d.order, name)
	return true
}

// Cache replaces the Placeholder stored under name with fetched content.
// Returns false if name is missing or is not a Placeholder.
func (d *Directory) Cache(name, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.children[name].(Placeholder); !ok {
		return false
	}
	d.children[name] = Cached{Content: content}
	return true
}

// State returns the population state.
func (d *Directory) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *Directory) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// Count returns the number of directories and files below d, excluding d.
func (d *Directory) Count() (dirs, files int) {
	for _, name := range d.Names() {
		n, _ := d.Child(name)
		switch n := n.(type) {
		case *Directory:
			subDirs, subFiles := n.Count()
			dirs += 1 + subDirs
			files += subFiles
		case Placeholder, Cached:
			files++
		}
	}
	return dirs, files
}
