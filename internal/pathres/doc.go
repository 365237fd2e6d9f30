// Package pathres interprets slash-separated paths against a vfs tree.
//
// Resolution is pure: given the tree root and the current Position it never
// mutates anything. Absolute paths start at the root; relative paths start
// at the current position. "." is a no-op and ".." drops the last segment
// and re-resolves from the root. The first failing segment decides the
// error and traversal stops there.
package pathres
