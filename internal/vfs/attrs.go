package vfs

import (
	"strings"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// Chmod changes the permission bits of raw. Only the owner or an
// administrator may do so; the expression is parsed only after that check,
// so a non-owner always sees "Operation not permitted".
func (fs *FileSystem) Chmod(a Actor, raw, expr string) (Node, error) {
	n, err := fs.walkTo(&a, fs.Resolve(a, raw), "chmod", raw)
	if err != nil {
		return Node{}, err
	}
	if !identity.CanAdminister(a.Subject, n.ownership()) {
		return Node{}, NewError(CodeNotPermitted, "chmod", raw)
	}
	mode, err := identity.ParseMode(expr, n.mode)
	if err != nil {
		return Node{}, Errorf(CodeInvalidMode, "chmod", "", "invalid mode: '%s'", expr)
	}
	n.mode = mode
	return fs.view(n), nil
}

// Chown changes owner and/or group of raw. who is "owner", "owner:group",
// "owner:" (owner's primary group) or ":group".
func (fs *FileSystem) Chown(a Actor, raw, who string) (Node, error) {
	n, err := fs.walkTo(&a, fs.Resolve(a, raw), "chown", raw)
	if err != nil {
		return Node{}, err
	}
	if !identity.CanAdminister(a.Subject, n.ownership()) {
		return Node{}, NewError(CodeNotPermitted, "chown", raw)
	}

	owner, group, err := fs.parseOwner(who)
	if err != nil {
		return Node{}, err
	}
	if owner != "" {
		n.owner = owner
	}
	if group != "" {
		n.group = group
	}
	return fs.view(n), nil
}

func (fs *FileSystem) parseOwner(who string) (string, string, error) {
	owner, group, hasColon := strings.Cut(who, ":")
	if owner == "" && group == "" {
		return "", "", Errorf(CodeInvalidArgument, "chown", "", "invalid owner: '%s'", who)
	}
	if owner != "" && !fs.users.HasUser(owner) {
		return "", "", Errorf(CodeInvalidArgument, "chown", "", "invalid user: '%s'", who)
	}
	if hasColon && group == "" && owner != "" {
		u, _ := fs.users.User(owner)
		group = u.PrimaryGroup
	}
	if group != "" && !fs.users.HasGroup(group) {
		return "", "", Errorf(CodeInvalidArgument, "chown", "", "invalid group: '%s'", who)
	}
	return owner, group, nil
}
