package vfs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed fallback
var fallbackFS embed.FS

const fallbackRoot = "fallback"

// loadFallback copies the embedded tree into dir as Cached files.
func loadFallback(dir *Directory) error {
	return fs.WalkDir(fallbackFS, fallbackRoot, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if filePath == fallbackRoot {
			return nil
		}

		rel := strings.TrimPrefix(filePath, fallbackRoot+"/")
		parent, err := fallbackParent(dir, path.Dir(rel))
		if err != nil {
			return err
		}

		if entry.IsDir() {
			parent.Insert(entry.Name(), NewDirectory())
			return nil
		}

		content, err := fallbackFS.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		parent.Insert(entry.Name(), Cached{Content: string(content)})
		return nil
	})
}

func fallbackParent(root *Directory, rel string) (*Directory, error) {
	dir := root
	if rel == "." {
		return dir, nil
	}
	for _, segment := range strings.Split(rel, "/") {
		n, _ := dir.Child(segment)
		next, ok := n.(*Directory)
		if !ok {
			return nil, fmt.Errorf("fallback tree: %s is not a directory", rel)
		}
		dir = next
	}
	return dir, nil
}
