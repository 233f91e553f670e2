package vfs

import (
	"errors"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

// AddUser registers name with supplemental groups and creates its home
// directory under /home when that directory exists. Administrator only.
func (fs *FileSystem) AddUser(a Actor, name string, groups []string) (identity.User, error) {
	if !a.Subject.Admin {
		return identity.User{}, NewError(CodePrivilegeRequired, "useradd", "")
	}
	home := identity.HomeFor(name)
	homeParent, homeName := Split(home)
	parent, err := fs.walkTo(nil, homeParent, "useradd", home)
	createHome := err == nil && parent.isDir()
	if createHome {
		if _, exists := parent.children[homeName]; exists {
			createHome = false
		}
	}

	if err := fs.users.AddUser(identity.User{Name: name, Supplemental: groups, Home: home}); err != nil {
		return identity.User{}, userError("useradd", name, err)
	}
	u, _ := fs.users.User(name)
	if createHome {
		dir := fs.alloc(homeName, KindDir, identity.DefaultDirMode, u.Name, u.PrimaryGroup)
		fs.attach(parent, dir)
	}
	return u, nil
}

// ModifyUser replaces or, with appendMode, extends the supplemental groups
// of name. Administrator only.
func (fs *FileSystem) ModifyUser(a Actor, name string, groups []string, appendMode bool) (identity.User, error) {
	if !a.Subject.Admin {
		return identity.User{}, NewError(CodePrivilegeRequired, "usermod", "")
	}
	if err := fs.users.SetGroups(name, groups, appendMode); err != nil {
		return identity.User{}, userError("usermod", name, err)
	}
	u, _ := fs.users.User(name)
	return u, nil
}

// DeleteUser removes name and, with removeHome, its home subtree. Both
// happen or neither does. Administrator only.
func (fs *FileSystem) DeleteUser(a Actor, name string, removeHome bool) error {
	if !a.Subject.Admin {
		return NewError(CodePrivilegeRequired, "userdel", "")
	}
	if name == identity.RootUser {
		return Errorf(CodeNotPermitted, "userdel", "", "cannot remove user '%s'", name)
	}
	u, ok := fs.users.User(name)
	if !ok {
		return Errorf(CodeInvalidArgument, "userdel", "", "user '%s' does not exist", name)
	}

	var home *node
	if removeHome {
		if n, err := fs.walkTo(nil, Clean(u.Home), "userdel", u.Home); err == nil && n.id != fs.root {
			home = n
		}
	}
	if err := fs.users.RemoveUser(name); err != nil {
		return userError("userdel", name, err)
	}
	if home != nil {
		fs.detach(home)
		fs.free(home)
	}
	return nil
}

// AddGroup registers a group. Administrator only.
func (fs *FileSystem) AddGroup(a Actor, name string) error {
	if !a.Subject.Admin {
		return NewError(CodePrivilegeRequired, "groupadd", "")
	}
	if fs.users.HasGroup(name) {
		return Errorf(CodeAlreadyExists, "groupadd", "", "group '%s' already exists", name)
	}
	if err := fs.users.AddGroup(name); err != nil {
		return userError("groupadd", name, err)
	}
	return nil
}

func userError(op, name string, err error) error {
	switch {
	case errors.Is(err, identity.ErrUserExists):
		return Errorf(CodeAlreadyExists, op, "", "user '%s' already exists", name)
	case errors.Is(err, identity.ErrUnknownUser):
		return Errorf(CodeInvalidArgument, op, "", "user '%s' does not exist", name)
	case errors.Is(err, identity.ErrUnknownGroup):
		return Errorf(CodeInvalidArgument, op, "", "%s", err.Error())
	case errors.Is(err, identity.ErrInvalidName):
		return Errorf(CodeInvalidArgument, op, "", "invalid user name '%s'", name)
	default:
		return fromIdentity(op, err)
	}
}
