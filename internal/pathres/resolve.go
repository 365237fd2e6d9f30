package pathres

import (
	"strings"

	"github.com/vvka-141/reposh/internal/vfs"
)

// FileTarget is a resolved file: the directory holding it, its name, and
// the node currently stored there (vfs.Placeholder or vfs.Cached).
type FileTarget struct {
	Parent Position
	Name   string
	Node   vfs.Node
}

// RepoPath returns the repository-relative path, e.g. "docs/guide.md".
func (f FileTarget) RepoPath() string {
	return f.Parent.Join(f.Name)
}

// ResolveDirectory resolves path to a directory position.
func ResolveDirectory(root *vfs.Directory, cwd Position, path string) (Position, error) {
	pos := start(root, cwd, path)
	for _, segment := range segments(path) {
		next, err := step(root, pos, segment, path)
		if err != nil {
			return Position{}, err
		}
		pos = next
	}
	return pos, nil
}

// ResolveFile resolves path to a file. Every segment but the last must be a
// directory; the last must name a file.
func ResolveFile(root *vfs.Directory, cwd Position, path string) (FileTarget, error) {
	pos := start(root, cwd, path)
	parts := segments(path)
	if len(parts) == 0 {
		return FileTarget{}, &Error{Kind: IsDirectory, Path: path}
	}

	for i, segment := range parts {
		last := i == len(parts)-1

		if segment == "." || segment == ".." {
			next, err := step(root, pos, segment, path)
			if err != nil {
				return FileTarget{}, err
			}
			if last {
				return FileTarget{}, &Error{Kind: IsDirectory, Path: path}
			}
			pos = next
			continue
		}

		n, ok := pos.Dir.Child(segment)
		if !ok {
			return FileTarget{}, &Error{Kind: DoesNotExist, Path: path}
		}
		switch n := n.(type) {
		case *vfs.Directory:
			if last {
				return FileTarget{}, &Error{Kind: IsDirectory, Path: path}
			}
			pos = pos.child(segment, n)
		default:
			if !last {
				return FileTarget{}, &Error{Kind: NotDirectory, Path: path}
			}
			return FileTarget{Parent: pos, Name: segment, Node: n}, nil
		}
	}

	return FileTarget{}, &Error{Kind: DoesNotExist, Path: path}
}

func start(root *vfs.Directory, cwd Position, path string) Position {
	if strings.HasPrefix(path, "/") || cwd.Dir == nil {
		return Root(root)
	}
	return cwd
}

func segments(path string) []string {
	var parts []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func step(root *vfs.Directory, pos Position, segment, requested string) (Position, error) {
	switch segment {
	case ".":
		return pos, nil
	case "..":
		if len(pos.Path) == 0 {
			return Position{}, &Error{Kind: AtRoot, Path: requested}
		}
		return walk(root, pos.Path[:len(pos.Path)-1], requested)
	}

	n, ok := pos.Dir.Child(segment)
	if !ok {
		return Position{}, &Error{Kind: NotFound, Path: requested}
	}
	dir, ok := n.(*vfs.Directory)
	if !ok {
		return Position{}, &Error{Kind: NotFound, Path: requested}
	}
	return pos.child(segment, dir), nil
}

// walk re-resolves an accumulated path from the root.
func walk(root *vfs.Directory, path []string, requested string) (Position, error) {
	pos := Root(root)
	for _, segment := range path {
		n, _ := pos.Dir.Child(segment)
		dir, ok := n.(*vfs.Directory)
		if !ok {
			return Position{}, &Error{Kind: NotFound, Path: requested}
		}
		pos = pos.child(segment, dir)
	}
	return pos, nil
}
