package pathres

import (
	"sort"
	"strings"

	"github.com/vvka-141/reposh/internal/vfs"
)

// Complete returns every completion of partial, sorted. Directory
// candidates end with "/". The parent part of partial is kept verbatim.
func Complete(root *vfs.Directory, cwd Position, partial string) []string {
	parent, prefix := splitPartial(partial)

	dirPath := parent
	if dirPath == "" {
		dirPath = "."
	}
	pos, err := ResolveDirectory(root, cwd, dirPath)
	if err != nil {
		return nil
	}

	var matches []string
	for _, name := range pos.Dir.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		n, _ := pos.Dir.Child(name)
		if _, isDir := n.(*vfs.Directory); isDir {
			name += "/"
		}
		matches = append(matches, parent+name)
	}
	sort.Strings(matches)
	return matches
}

// Completer cycles through completions on repeated Tab presses.
//
//	completed := completer.Next(root, cwd, word)
//	// on any other key:
//	completer.Reset()
type Completer struct {
	matches    []string
	cycleIndex int
	lastParent string
}

// Next returns the next completion for input. The first call extends input
// to the longest common prefix when that adds anything; later calls with
// the same parent cycle through the matches.
func (c *Completer) Next(root *vfs.Directory, cwd Position, input string) string {
	parent, _ := splitPartial(input)

	if c.matches == nil || parent != c.lastParent {
		c.matches = Complete(root, cwd, input)
		c.cycleIndex = 0
		c.lastParent = parent

		if len(c.matches) == 0 {
			return input
		}
		if len(c.matches) > 1 {
			if common := longestCommonPrefix(c.matches); len(common) > len(input) {
				return common
			}
		}
		return c.matches[0]
	}

	if len(c.matches) == 0 {
		return input
	}
	c.cycleIndex = (c.cycleIndex + 1) % len(c.matches)
	return c.matches[c.cycleIndex]
}

// Reset clears the cycle state.
func (c *Completer) Reset() {
	c.matches = nil
	c.cycleIndex = 0
	c.lastParent = ""
}

// splitPartial splits "docs/gu" into ("docs/", "gu"). The parent keeps its trailing slash.
func splitPartial(input string) (parent, prefix string) {
	i := strings.LastIndex(input, "/")
	if i < 0 {
		return "", input
	}
	return input[:i+1], input[i+1:]
}

func longestCommonPrefix(strs []string) string {
	prefix := strs[0]
	for _, s := range strs[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
