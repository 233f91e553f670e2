package vfs

import (
	"strings"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// Stat returns the node at raw. Every ancestor must be traversable.
func (fs *FileSystem) Stat(a Actor, raw string) (Node, error) {
	n, err := fs.walkTo(&a, fs.Resolve(a, raw), "stat", raw)
	if err != nil {
		return Node{}, err
	}
	return fs.view(n), nil
}

// Lookup returns the node at an absolute path without access checks. It
// serves collaborators such as mission validators.
func (fs *FileSystem) Lookup(abs string) (Node, bool) {
	n, err := fs.walkTo(nil, Clean(abs), "lookup", abs)
	if err != nil {
		return Node{}, false
	}
	return fs.view(n), true
}

// List returns the entries of the directory at raw in lexical order. A file
// lists as itself.
func (fs *FileSystem) List(a Actor, raw string) ([]Node, error) {
	n, err := fs.walkTo(&a, fs.Resolve(a, raw), "list", raw)
	if err != nil {
		return nil, err
	}
	if !n.isDir() {
		return []Node{fs.view(n)}, nil
	}
	if !fs.canList(a, n) {
		return nil, NewError(CodePermissionDenied, "list", raw)
	}
	out := make([]Node, 0, len(n.children))
	for _, name := range n.childNames() {
		out = append(out, fs.view(fs.nodes[n.children[name]]))
	}
	return out, nil
}

// CreateFile creates a new file at raw owned by the actor.
func (fs *FileSystem) CreateFile(a Actor, raw, content string) (Node, error) {
	if _, err := NormalizeWritePath(raw); err != nil {
		return Node{}, err
	}
	abs := fs.Resolve(a, raw)
	parent, name, err := fs.parentFor(&a, abs, "create", raw)
	if err != nil {
		return Node{}, err
	}
	if _, exists := parent.children[name]; exists {
		return Node{}, NewError(CodeAlreadyExists, "create", raw)
	}
	n := fs.newEntry(a, name, KindFile)
	n.content = content
	fs.attach(parent, n)
	return fs.view(n), nil
}

// Touch updates the modification time of raw, creating an empty file when
// it does not exist.
func (fs *FileSystem) Touch(a Actor, raw string) (Node, error) {
	abs := fs.Resolve(a, raw)
	if n, err := fs.walkTo(&a, abs, "touch", raw); err == nil {
		if !identity.CanWrite(a.Subject, n.ownership()) {
			return Node{}, NewError(CodePermissionDenied, "touch", raw)
		}
		n.modTime = fs.now()
		return fs.view(n), nil
	} else if CodeOf(err) != CodeNotFound {
		return Node{}, err
	}
	return fs.CreateFile(a, raw, "")
}

// CreateDir creates a directory at raw. With parents, missing ancestors are
// created too and an existing directory is not an error. Nothing is
// created unless the whole chain can be.
func (fs *FileSystem) CreateDir(a Actor, raw string, parents bool) (Node, error) {
	if _, err := NormalizeWritePath(raw); err != nil {
		return Node{}, err
	}
	abs := fs.Resolve(a, raw)
	if !parents {
		parent, name, err := fs.parentFor(&a, abs, "mkdir", raw)
		if err != nil {
			return Node{}, err
		}
		if _, exists := parent.children[name]; exists {
			return Node{}, NewError(CodeAlreadyExists, "mkdir", raw)
		}
		n := fs.newEntry(a, name, KindDir)
		fs.attach(parent, n)
		return fs.view(n), nil
	}

	// Find the deepest existing ancestor, then create the rest.
	names := components(abs)
	cur := fs.nodes[fs.root]
	i := 0
	for ; i < len(names); i++ {
		if !cur.isDir() {
			return Node{}, NewError(CodeNotDirectory, "mkdir", raw)
		}
		if !identity.CanExecute(a.Subject, cur.ownership()) {
			return Node{}, NewError(CodePermissionDenied, "mkdir", raw)
		}
		cid, ok := cur.children[names[i]]
		if !ok {
			break
		}
		cur = fs.nodes[cid]
	}
	if !cur.isDir() {
		return Node{}, NewError(CodeNotDirectory, "mkdir", raw)
	}
	if i == len(names) {
		return fs.view(cur), nil
	}
	if !fs.canModify(a, cur) {
		return Node{}, NewError(CodePermissionDenied, "mkdir", raw)
	}
	for ; i < len(names); i++ {
		n := fs.newEntry(a, names[i], KindDir)
		fs.attach(cur, n)
		cur = n
	}
	return fs.view(cur), nil
}

// WriteFile replaces the content of raw, creating the file when missing.
func (fs *FileSystem) WriteFile(a Actor, raw, content string) (Node, error) {
	return fs.write(a, raw, content, false)
}

// AppendFile appends to raw, creating the file when missing.
func (fs *FileSystem) AppendFile(a Actor, raw, content string) (Node, error) {
	return fs.write(a, raw, content, true)
}

func (fs *FileSystem) write(a Actor, raw, content string, appendMode bool) (Node, error) {
	if _, err := NormalizeWritePath(raw); err != nil {
		return Node{}, err
	}
	abs := fs.Resolve(a, raw)
	n, err := fs.walkTo(&a, abs, "write", raw)
	if CodeOf(err) == CodeNotFound {
		return fs.CreateFile(a, raw, content)
	}
	if err != nil {
		return Node{}, err
	}
	if n.isDir() {
		return Node{}, NewError(CodeIsDirectory, "write", raw)
	}
	if !identity.CanWrite(a.Subject, n.ownership()) {
		return Node{}, NewError(CodePermissionDenied, "write", raw)
	}
	if appendMode {
		n.content += content
	} else {
		n.content = content
	}
	n.modTime = fs.now()
	return fs.view(n), nil
}

// ReadFile returns the content of the file at raw.
func (fs *FileSystem) ReadFile(a Actor, raw string) (string, error) {
	n, err := fs.walkTo(&a, fs.Resolve(a, raw), "read", raw)
	if err != nil {
		return "", err
	}
	if n.isDir() {
		return "", NewError(CodeIsDirectory, "read", raw)
	}
	if !identity.CanRead(a.Subject, n.ownership()) {
		return "", NewError(CodePermissionDenied, "read", raw)
	}
	return n.content, nil
}

// Remove deletes the entry at raw. Directories need recursive; every
// directory in the subtree must then be listable and writable, checked
// before anything is removed.
func (fs *FileSystem) Remove(a Actor, raw string, recursive bool) error {
	abs := fs.Resolve(a, raw)
	n, err := fs.walkTo(&a, abs, "remove", raw)
	if err != nil {
		return err
	}
	if _, _, err := fs.parentFor(&a, abs, "remove", raw); err != nil {
		return err
	}
	if n.isDir() {
		if !recursive {
			return NewError(CodeIsDirectory, "remove", raw)
		}
		if err := fs.checkSubtree(a, n, raw); err != nil {
			return err
		}
	}
	fs.detach(n)
	fs.free(n)
	return nil
}

// RemoveDir deletes the empty directory at raw.
func (fs *FileSystem) RemoveDir(a Actor, raw string) error {
	abs := fs.Resolve(a, raw)
	n, err := fs.walkTo(&a, abs, "rmdir", raw)
	if err != nil {
		return err
	}
	if !n.isDir() {
		return NewError(CodeNotDirectory, "rmdir", raw)
	}
	if _, _, err := fs.parentFor(&a, abs, "rmdir", raw); err != nil {
		return err
	}
	if len(n.children) > 0 {
		return NewError(CodeNotEmpty, "rmdir", raw)
	}
	fs.detach(n)
	fs.free(n)
	return nil
}

// checkSubtree requires every directory under dir, dir included, to be
// listable and modifiable.
func (fs *FileSystem) checkSubtree(a Actor, dir *node, display string) error {
	if !fs.canList(a, dir) || !fs.canModify(a, dir) {
		return NewError(CodePermissionDenied, "remove", display)
	}
	for _, name := range dir.childNames() {
		c := fs.nodes[dir.children[name]]
		if !c.isDir() {
			continue
		}
		if err := fs.checkSubtree(a, c, strings.TrimSuffix(display, "/")+"/"+name); err != nil {
			return err
		}
	}
	return nil
}

// newEntry allocates a node owned by the actor with default permissions.
func (fs *FileSystem) newEntry(a Actor, name string, kind Kind) *node {
	mode := identity.DefaultFileMode
	if kind == KindDir {
		mode = identity.DefaultDirMode
	}
	group := a.Subject.PrimaryGroup
	if group == "" {
		group = a.Subject.Name
	}
	return fs.alloc(name, kind, mode, a.Subject.Name, group)
}
