// Package vfs holds the in-memory tree that mirrors a remote repository.
//
// A Node is one of three variants:
//   - *Directory: named children plus a population state
//   - Placeholder: a file known to exist whose content has not been fetched
//   - Cached: a file whose content is held in memory
//
// Trees are populated lazily by Populate, which lists the repository root
// and recursively lists every discovered subdirectory in the background.
// Readers may observe a directory before its listing arrives; such a
// directory is simply empty and in StatePending. Tree.Wait blocks until
// every listing has completed.
//
// Nodes are only ever added (or upgraded from Placeholder to Cached), never
// removed, so positions into the tree stay valid for the process lifetime.
package vfs
