package vfs

import (
	"sort"
	"time"

	"github.com/GriffinCanCode/termquest/internal/identity"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
)

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// node is the arena record. Parent and children refer to other records by
// id only.
type node struct {
	id       id.NodeID
	name     string
	kind     Kind
	mode     identity.Mode
	owner    string
	group    string
	content  string
	parent   id.NodeID
	children map[string]id.NodeID
	modTime  time.Time
}

func (n *node) isDir() bool { return n.kind == KindDir }

func (n *node) ownership() identity.Ownership {
	return identity.Ownership{Owner: n.owner, Group: n.group, Mode: n.mode, Dir: n.isDir()}
}

// childNames returns child names in lexical order.
func (n *node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Node is a read-only view of a tree entry.
type Node struct {
	ID         id.NodeID
	Path       string
	Name       string
	Kind       Kind
	Mode       identity.Mode
	Owner      string
	Group      string
	Content    string
	Size       int
	Children   int
	ModifiedAt time.Time
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool { return n.Kind == KindDir }

// Ownership returns the access-relevant attributes.
func (n Node) Ownership() identity.Ownership {
	return identity.Ownership{Owner: n.Owner, Group: n.Group, Mode: n.Mode, Dir: n.IsDir()}
}

// ModeString renders the type and permission column of ls -l.
func (n Node) ModeString() string {
	if n.IsDir() {
		return "d" + n.Mode.String()
	}
	return "-" + n.Mode.String()
}
