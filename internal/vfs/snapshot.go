package vfs

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/termquest/internal/identity"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is the serializable state of a session: the whole tree, the
// user directory, the active user and the working directory.
type Snapshot struct {
	Version  int             `json:"version"`
	Username string          `json:"username"`
	Cwd      string          `json:"cwd"`
	Groups   []string        `json:"groups"`
	Users    []identity.User `json:"users"`
	Root     *SnapshotNode   `json:"root"`
}

// SnapshotNode is one serialized tree entry.
type SnapshotNode struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Permissions string          `json:"permissions"`
	Owner       string          `json:"owner"`
	Group       string          `json:"group"`
	Content     string          `json:"content,omitempty"`
	ModifiedAt  time.Time       `json:"modifiedAt"`
	Children    []*SnapshotNode `json:"children,omitempty"`
}

const (
	typeFile = "file"
	typeDir  = "directory"
)

// export captures the tree and user directory.
func (fs *FileSystem) export() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Groups:  fs.users.Groups(),
		Users:   fs.users.Users(),
		Root:    fs.exportNode(fs.nodes[fs.root]),
	}
}

func (fs *FileSystem) exportNode(n *node) *SnapshotNode {
	out := &SnapshotNode{
		Name:        n.name,
		Type:        typeFile,
		Permissions: n.mode.String(),
		Owner:       n.owner,
		Group:       n.group,
		Content:     n.content,
		ModifiedAt:  n.modTime,
	}
	if n.isDir() {
		out.Type = typeDir
		out.Children = make([]*SnapshotNode, 0, len(n.children))
		for _, name := range n.childNames() {
			out.Children = append(out.Children, fs.exportNode(fs.nodes[n.children[name]]))
		}
	}
	return out
}

// MarshalSnapshot encodes s.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes blob without validating it.
func UnmarshalSnapshot(blob []byte) (*Snapshot, error) {
	var s Snapshot
	if err := sonic.ConfigStd.Unmarshal(blob, &s); err != nil {
		return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: %v", err)
	}
	return &s, nil
}

// built is a fully validated replacement state, ready to swap in.
type built struct {
	nodes map[id.NodeID]*node
	root  id.NodeID
	users *identity.Directory
}

// build validates s and constructs fresh state from it. It never touches
// the receiver's live state.
func (fs *FileSystem) build(s *Snapshot) (*built, error) {
	if s == nil || s.Root == nil {
		return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: missing root")
	}
	if s.Version != SnapshotVersion {
		return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: unsupported version %d", s.Version)
	}
	if s.Root.Type != typeDir {
		return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: root is not a directory")
	}

	users := identity.NewDirectory()
	for _, g := range s.Groups {
		if err := users.AddGroup(g); err != nil {
			return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: %v", err)
		}
	}
	for _, u := range s.Users {
		var err error
		if u.Name == identity.RootUser {
			err = users.SetGroups(u.Name, u.Supplemental, false)
		} else {
			err = users.AddUser(u)
		}
		if err != nil {
			return nil, Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: %v", err)
		}
	}

	b := &built{nodes: make(map[id.NodeID]*node), users: users}
	root, err := b.add(s.Root, "", "/")
	if err != nil {
		return nil, err
	}
	root.name = ""
	b.root = root.id
	return b, nil
}

func (b *built) add(sn *SnapshotNode, parent id.NodeID, at string) (*node, error) {
	if sn == nil {
		return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: empty entry")
	}
	mode, err := identity.ParseModeString(sn.Permissions)
	if err != nil {
		return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: bad permissions %q", sn.Permissions)
	}
	if sn.Owner == "" || sn.Group == "" {
		return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: missing ownership")
	}

	n := &node{
		id:      id.NewNodeID(),
		name:    sn.Name,
		mode:    mode,
		owner:   sn.Owner,
		group:   sn.Group,
		parent:  parent,
		modTime: sn.ModifiedAt,
	}
	switch sn.Type {
	case typeFile:
		if len(sn.Children) > 0 {
			return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: file with children")
		}
		n.kind = KindFile
		n.content = sn.Content
	case typeDir:
		n.kind = KindDir
		n.children = make(map[string]id.NodeID, len(sn.Children))
		for _, c := range sn.Children {
			if c == nil || !validName(c.Name) {
				return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: bad entry name")
			}
			if _, dup := n.children[c.Name]; dup {
				return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: duplicate entry %q", c.Name)
			}
			child, err := b.add(c, n.id, joinPath(at, c.Name))
			if err != nil {
				return nil, err
			}
			n.children[c.Name] = child.id
		}
	default:
		return nil, Errorf(CodeInvalidSnapshot, "restore", at, "invalid snapshot: unknown type %q", sn.Type)
	}
	b.nodes[n.id] = n
	return n, nil
}

// install swaps in validated state.
func (fs *FileSystem) install(b *built) {
	fs.nodes = b.nodes
	fs.root = b.root
	fs.users = b.users
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
