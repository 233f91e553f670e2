package vfs

import "errors"

// SkipDir returned from a WalkFunc skips the directory just visited.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for every visited entry with its absolute path.
type WalkFunc func(path string, n Node) error

// Walk visits raw and its descendants depth-first in pre-order, children in
// lexical order. Directories the actor cannot both read and traverse are
// left out together with their subtrees. The start itself must be
// listable when it is a directory.
func (fs *FileSystem) Walk(a Actor, raw string, fn WalkFunc) error {
	start, err := fs.walkTo(&a, fs.Resolve(a, raw), "walk", raw)
	if err != nil {
		return err
	}
	if start.isDir() && !fs.canList(a, start) {
		return NewError(CodePermissionDenied, "walk", raw)
	}
	return fs.walk(a, start, fn)
}

func (fs *FileSystem) walk(a Actor, n *node, fn WalkFunc) error {
	v := fs.view(n)
	if err := fn(v.Path, v); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}
	if !n.isDir() {
		return nil
	}
	for _, name := range n.childNames() {
		child := fs.nodes[n.children[name]]
		if child.isDir() && !fs.canList(a, child) {
			continue
		}
		if err := fs.walk(a, child, fn); err != nil {
			return err
		}
	}
	return nil
}
