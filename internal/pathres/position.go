package pathres

import (
	"strings"

	"github.com/vvka-141/reposh/internal/vfs"
)

// Position is a directory paired with the path that reaches it from the root.
// The two fields always change together.
type Position struct {
	Dir  *vfs.Directory
	Path []string
}

// Root returns the position of the tree root.
func Root(root *vfs.Directory) Position {
	return Position{Dir: root}
}

// String renders the path as "/a/b", or "/" at the root.
func (p Position) String() string {
	return "/" + strings.Join(p.Path, "/")
}

// Join returns the repository-relative path of name inside p, without a leading slash.
func (p Position) Join(name string) string {
	if len(p.Path) == 0 {
		return name
	}
	return strings.Join(p.Path, "/") + "/" + name
}

// Equal reports whether both positions name the same directory by the same path.
func (p Position) Equal(other Position) bool {
	if p.Dir != other.Dir || len(p.Path) != len(other.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

func (p Position) child(name string, dir *vfs.Directory) Position {
	path := make([]string, len(p.Path), len(p.Path)+1)
	copy(path, p.Path)
	return Position{Dir: dir, Path: append(path, name)}
}
