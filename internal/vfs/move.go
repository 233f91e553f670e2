package vfs

import (
	"strings"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// Move relocates or renames the entry at srcRaw. A destination that is an
// existing directory receives the source under its own name; a trailing
// slash demands such a directory. Moving onto the current location is a
// no-op. A directory can never be moved into itself or below itself.
func (fs *FileSystem) Move(a Actor, srcRaw, dstRaw string) error {
	src, err := fs.walkTo(&a, fs.Resolve(a, srcRaw), "move", srcRaw)
	if err != nil {
		return err
	}
	if src.id == fs.root {
		return NewError(CodeNotPermitted, "move", srcRaw)
	}

	parent, name, err := fs.targetFor(a, src, dstRaw, "move")
	if err != nil {
		return err
	}
	if src.isDir() && fs.isDescendant(parent, src) {
		return NewError(CodeIntoItself, "move", srcRaw)
	}
	if parent.id == src.parent && name == src.name {
		return nil
	}
	if !validName(name) || strings.ContainsAny(name, unsafeChars) {
		return NewError(CodeInvalidPath, "move", dstRaw)
	}
	if !fs.canModify(a, fs.nodes[src.parent]) {
		return NewError(CodePermissionDenied, "move", srcRaw)
	}
	if !fs.canModify(a, parent) {
		return NewError(CodePermissionDenied, "move", dstRaw)
	}

	var replaced *node
	if cid, ok := parent.children[name]; ok {
		existing := fs.nodes[cid]
		switch {
		case existing.isDir() && !src.isDir():
			return NewError(CodeIsDirectory, "move", dstRaw)
		case !existing.isDir() && src.isDir():
			return NewError(CodeNotDirectory, "move", dstRaw)
		case existing.isDir() && len(existing.children) > 0:
			return NewError(CodeNotEmpty, "move", dstRaw)
		}
		replaced = existing
	}

	// Every check has passed; the relink below cannot fail.
	if replaced != nil {
		fs.detach(replaced)
		fs.free(replaced)
	}
	fs.detach(src)
	src.name = name
	fs.attach(parent, src)
	return nil
}

// Copy duplicates the entry at srcRaw. Directories need recursive. Copies
// belong to the actor and keep the source permission bits.
func (fs *FileSystem) Copy(a Actor, srcRaw, dstRaw string, recursive bool) error {
	src, err := fs.walkTo(&a, fs.Resolve(a, srcRaw), "copy", srcRaw)
	if err != nil {
		return err
	}
	if src.isDir() && !recursive {
		return NewError(CodeIsDirectory, "copy", srcRaw)
	}
	if err := fs.checkReadable(a, src, srcRaw); err != nil {
		return err
	}

	parent, name, err := fs.targetFor(a, src, dstRaw, "copy")
	if err != nil {
		return err
	}
	if src.isDir() && fs.isDescendant(parent, src) {
		return NewError(CodeIntoItself, "copy", srcRaw)
	}
	if !validName(name) || strings.ContainsAny(name, unsafeChars) {
		return NewError(CodeInvalidPath, "copy", dstRaw)
	}
	if !fs.canModify(a, parent) {
		return NewError(CodePermissionDenied, "copy", dstRaw)
	}

	if cid, ok := parent.children[name]; ok {
		existing := fs.nodes[cid]
		switch {
		case existing.id == src.id:
			return Errorf(CodeInvalidArgument, "copy", srcRaw, "'%s' and '%s' are the same file", srcRaw, dstRaw)
		case existing.isDir() && !src.isDir():
			return NewError(CodeIsDirectory, "copy", dstRaw)
		case existing.isDir():
			return NewError(CodeAlreadyExists, "copy", dstRaw)
		case src.isDir():
			return NewError(CodeNotDirectory, "copy", dstRaw)
		case !identity.CanWrite(a.Subject, existing.ownership()):
			return NewError(CodePermissionDenied, "copy", dstRaw)
		}
		existing.content = src.content
		existing.modTime = fs.now()
		return nil
	}

	dup := fs.cloneTree(a, src)
	dup.name = name
	fs.attach(parent, dup)
	return nil
}

// targetFor resolves where src would land for dstRaw.
func (fs *FileSystem) targetFor(a Actor, src *node, dstRaw, op string) (*node, string, error) {
	dstAbs := fs.Resolve(a, dstRaw)
	wantDir := strings.HasSuffix(dstRaw, "/")

	dst, err := fs.walkTo(&a, dstAbs, op, dstRaw)
	switch {
	case err == nil && dst.isDir():
		return dst, src.name, nil
	case wantDir && (err == nil || CodeOf(err) == CodeNotFound || CodeOf(err) == CodeNotDirectory):
		return nil, "", NewError(CodeNotDirectory, op, dstRaw)
	case err != nil && CodeOf(err) != CodeNotFound:
		return nil, "", err
	}

	dir, base := Split(dstAbs)
	parent, err := fs.walkTo(&a, dir, op, dstRaw)
	if err != nil {
		return nil, "", err
	}
	if !parent.isDir() {
		return nil, "", NewError(CodeNotDirectory, op, dstRaw)
	}
	return parent, base, nil
}

// checkReadable requires every file under n to be readable and every
// directory to be listable.
func (fs *FileSystem) checkReadable(a Actor, n *node, display string) error {
	if !n.isDir() {
		if !identity.CanRead(a.Subject, n.ownership()) {
			return NewError(CodePermissionDenied, "copy", display)
		}
		return nil
	}
	if !fs.canList(a, n) {
		return NewError(CodePermissionDenied, "copy", display)
	}
	for _, name := range n.childNames() {
		child := fs.nodes[n.children[name]]
		if err := fs.checkReadable(a, child, strings.TrimSuffix(display, "/")+"/"+name); err != nil {
			return err
		}
	}
	return nil
}

// cloneTree copies n and its subtree into fresh, unattached records.
func (fs *FileSystem) cloneTree(a Actor, n *node) *node {
	dup := fs.newEntry(a, n.name, n.kind)
	dup.mode = n.mode
	dup.content = n.content
	for _, name := range n.childNames() {
		fs.attach(dup, fs.cloneTree(a, fs.nodes[n.children[name]]))
	}
	return dup
}
