package vfs

import (
	"path"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// unsafeChars may not appear in paths written through the normalizer.
const unsafeChars = "<>|;&$`\"'\\"

// Clean returns the canonical absolute form of p.
func Clean(p string) string {
	return path.Clean("/" + p)
}

// Split returns the parent directory and base name of a canonical path.
func Split(abs string) (string, string) {
	dir, base := path.Split(abs)
	return Clean(dir), base
}

// Resolve converts raw into a canonical absolute path relative to the
// actor's working directory. "~" and "~/..." expand to the actor's home.
func (fs *FileSystem) Resolve(a Actor, raw string) string {
	switch {
	case raw == "":
		return Clean(a.Cwd)
	case raw == "~":
		return fs.home(a.Subject.Name)
	case strings.HasPrefix(raw, "~/"):
		return Clean(fs.home(a.Subject.Name) + raw[1:])
	case strings.HasPrefix(raw, "/"):
		return Clean(raw)
	default:
		return Clean(a.Cwd + "/" + raw)
	}
}

// Home returns the home directory of username.
func (fs *FileSystem) Home(username string) string {
	return fs.home(username)
}

func (fs *FileSystem) home(username string) string {
	if u, ok := fs.users.User(username); ok && u.Home != "" {
		return Clean(u.Home)
	}
	return identity.HomeFor(username)
}

// NormalizeWritePath validates a path that is about to be created or
// written. It rejects control characters, shell metacharacters and any ".."
// segment; "file..txt" stays legal because only whole segments count.
func NormalizeWritePath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", NewError(CodeInvalidPath, "normalize", raw)
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(unsafeChars, r) {
			return "", NewError(CodeInvalidPath, "normalize", raw)
		}
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", NewError(CodeInvalidPath, "normalize", raw)
		}
	}
	return raw, nil
}

// validName reports whether name can label a node.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// components splits a canonical path into names.
func components(abs string) []string {
	trimmed := strings.Trim(abs, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// walkTo finds the node at abs. With a non-nil actor every directory on
// the way must grant execute. display is the path reported in errors.
func (fs *FileSystem) walkTo(a *Actor, abs, op, display string) (*node, error) {
	cur := fs.nodes[fs.root]
	for _, name := range components(abs) {
		if !cur.isDir() {
			return nil, NewError(CodeNotDirectory, op, display)
		}
		if a != nil && !identity.CanExecute(a.Subject, cur.ownership()) {
			return nil, NewError(CodePermissionDenied, op, display)
		}
		cid, ok := cur.children[name]
		if !ok {
			return nil, NewError(CodeNotFound, op, display)
		}
		cur = fs.nodes[cid]
	}
	return cur, nil
}

// parentFor resolves the directory that will hold abs and checks that the
// actor may add or remove entries in it.
func (fs *FileSystem) parentFor(a *Actor, abs, op, display string) (*node, string, error) {
	if abs == "/" {
		return nil, "", NewError(CodeNotPermitted, op, display)
	}
	dir, base := Split(abs)
	parent, err := fs.walkTo(a, dir, op, display)
	if err != nil {
		return nil, "", err
	}
	if !parent.isDir() {
		return nil, "", NewError(CodeNotDirectory, op, display)
	}
	if a != nil && !fs.canModify(*a, parent) {
		return nil, "", NewError(CodePermissionDenied, op, display)
	}
	return parent, base, nil
}

// canModify reports whether entries may be added to or removed from dir.
func (fs *FileSystem) canModify(a Actor, dir *node) bool {
	o := dir.ownership()
	return identity.CanWrite(a.Subject, o) && identity.CanExecute(a.Subject, o)
}

// canList reports whether dir may be listed and entered.
func (fs *FileSystem) canList(a Actor, dir *node) bool {
	o := dir.ownership()
	return identity.CanRead(a.Subject, o) && identity.CanExecute(a.Subject, o)
}
