package vfs

import (
	"time"

	"github.com/GriffinCanCode/termquest/internal/identity"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
)

// FileSystem is the in-memory tree together with the user directory that
// owns its nodes. It is not safe for concurrent use; callers serialize
// access per session.
type FileSystem struct {
	nodes map[id.NodeID]*node
	root  id.NodeID
	users *identity.Directory
	now   func() time.Time
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithClock overrides the time source used for modification times.
func WithClock(now func() time.Time) Option {
	return func(fs *FileSystem) {
		fs.now = now
	}
}

// New returns a filesystem holding only the root directory and the root
// account.
func New(opts ...Option) *FileSystem {
	fs := &FileSystem{
		nodes: make(map[id.NodeID]*node),
		users: identity.NewDirectory(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}
	root := fs.alloc("", KindDir, identity.DefaultDirMode, identity.RootUser, identity.RootUser)
	fs.root = root.id
	return fs
}

// Users exposes the user directory for read access.
func (fs *FileSystem) Users() *identity.Directory {
	return fs.users
}

// Now returns the filesystem clock.
func (fs *FileSystem) Now() time.Time {
	return fs.now()
}

// Actor is the explicit context of an operation: who acts and from where
// relative paths resolve.
type Actor struct {
	Subject identity.Subject
	Cwd     string
}

// ActorFor derives the actor for username at cwd.
func (fs *FileSystem) ActorFor(username, cwd string) (Actor, error) {
	subj, err := fs.users.Subject(username)
	if err != nil {
		return Actor{}, fromIdentity("actor", err)
	}
	if cwd == "" {
		cwd = "/"
	}
	return Actor{Subject: subj, Cwd: cwd}, nil
}

func (fs *FileSystem) alloc(name string, kind Kind, mode identity.Mode, owner, group string) *node {
	n := &node{
		id:      id.NewNodeID(),
		name:    name,
		kind:    kind,
		mode:    mode,
		owner:   owner,
		group:   group,
		modTime: fs.now(),
	}
	if kind == KindDir {
		n.children = make(map[string]id.NodeID)
	}
	fs.nodes[n.id] = n
	return n
}

// attach links child under parent and touches the parent.
func (fs *FileSystem) attach(parent, child *node) {
	child.parent = parent.id
	parent.children[child.name] = child.id
	parent.modTime = fs.now()
}

// detach unlinks n from its parent without freeing it.
func (fs *FileSystem) detach(n *node) {
	if parent, ok := fs.nodes[n.parent]; ok {
		delete(parent.children, n.name)
		parent.modTime = fs.now()
	}
	n.parent = ""
}

// free removes n and its whole subtree from the arena.
func (fs *FileSystem) free(n *node) {
	for _, cid := range n.children {
		if c, ok := fs.nodes[cid]; ok {
			fs.free(c)
		}
	}
	delete(fs.nodes, n.id)
}

// pathOf rebuilds the absolute path of n from its ancestors.
func (fs *FileSystem) pathOf(n *node) string {
	if n.id == fs.root {
		return "/"
	}
	var parts []string
	for cur := n; cur != nil && cur.id != fs.root; cur = fs.nodes[cur.parent] {
		parts = append(parts, cur.name)
	}
	out := ""
	for i := len(parts) - 1; i >= 0; i-- {
		out += "/" + parts[i]
	}
	return out
}

// isDescendant reports whether n is anchor or lies below it.
func (fs *FileSystem) isDescendant(n, anchor *node) bool {
	for cur := n; cur != nil; cur = fs.nodes[cur.parent] {
		if cur.id == anchor.id {
			return true
		}
		if cur.id == fs.root {
			return false
		}
	}
	return false
}

func (fs *FileSystem) view(n *node) Node {
	return Node{
		ID:         n.id,
		Path:       fs.pathOf(n),
		Name:       n.name,
		Kind:       n.kind,
		Mode:       n.mode,
		Owner:      n.owner,
		Group:      n.group,
		Content:    n.content,
		Size:       len(n.content),
		Children:   len(n.children),
		ModifiedAt: n.modTime,
	}
}
