package vfs

import (
	"github.com/GriffinCanCode/termquest/internal/identity"
)

// Session is one logical actor working in a filesystem: the active user
// and the current directory. Commands run against a session one at a time.
type Session struct {
	fs       *FileSystem
	username string
	cwd      string
	// elevatedFrom is the user an Elevate call will restore.
	elevatedFrom string
}

// NewSession starts username in its home directory, or "/" when the home
// does not exist.
func NewSession(fs *FileSystem, username string) (*Session, error) {
	if !fs.users.HasUser(username) {
		return nil, Errorf(CodeInvalidArgument, "session", "", "user '%s' does not exist", username)
	}
	s := &Session{fs: fs, username: username, cwd: "/"}
	if n, ok := fs.Lookup(fs.home(username)); ok && n.IsDir() {
		s.cwd = n.Path
	}
	return s, nil
}

// FS returns the underlying filesystem.
func (s *Session) FS() *FileSystem { return s.fs }

// Username returns the active user.
func (s *Session) Username() string { return s.username }

// Cwd returns the working directory.
func (s *Session) Cwd() string { return s.cwd }

// Home returns the active user's home directory.
func (s *Session) Home() string { return s.fs.home(s.username) }

// Actor derives the operation context for the active user. A working
// directory removed from under the session falls back to "/".
func (s *Session) Actor() Actor {
	if n, ok := s.fs.Lookup(s.cwd); !ok || !n.IsDir() {
		s.cwd = "/"
	}
	subj, err := s.fs.users.Subject(s.username)
	if err != nil {
		subj = identity.Subject{Name: s.username, Groups: map[string]struct{}{}}
	}
	return Actor{Subject: subj, Cwd: s.cwd}
}

// Chdir changes the working directory. The target must be a directory the
// user can traverse.
func (s *Session) Chdir(raw string) error {
	a := s.Actor()
	if raw == "" {
		raw = "~"
	}
	abs := s.fs.Resolve(a, raw)
	n, err := s.fs.walkTo(&a, abs, "cd", raw)
	if err != nil {
		return err
	}
	if !n.isDir() {
		return NewError(CodeNotDirectory, "cd", raw)
	}
	if !identity.CanExecute(a.Subject, n.ownership()) {
		return NewError(CodePermissionDenied, "cd", raw)
	}
	s.cwd = abs
	return nil
}

// SwitchUser makes username the active user. The working directory is
// kept.
func (s *Session) SwitchUser(username string) error {
	if !s.fs.users.HasUser(username) {
		return Errorf(CodeInvalidArgument, "su", "", "user '%s' does not exist", username)
	}
	s.username = username
	return nil
}

// Elevate runs fn as root and restores the previous user afterwards, even
// if fn panics.
func (s *Session) Elevate(fn func()) {
	prev, outer := s.username, s.elevatedFrom
	s.username = identity.RootUser
	s.elevatedFrom = prev
	defer func() {
		s.elevatedFrom = outer
		if s.fs.users.HasUser(prev) {
			s.username = prev
		} else {
			s.username = identity.RootUser
		}
	}()
	fn()
}

// DeleteUser removes a user unless it is logged in to this session,
// either directly or as the user behind an elevation.
func (s *Session) DeleteUser(name string, removeHome bool) error {
	if name == s.username || name == s.elevatedFrom {
		return Errorf(CodeNotPermitted, "userdel", "", "user '%s' is currently logged in", name)
	}
	return s.fs.DeleteUser(s.Actor(), name, removeHome)
}

// Snapshot captures tree, users, active user and working directory.
func (s *Session) Snapshot() ([]byte, error) {
	snap := s.fs.export()
	snap.Username = s.username
	snap.Cwd = s.cwd
	return MarshalSnapshot(snap)
}

// Restore replaces the whole session state with blob. Nothing changes
// unless blob validates completely.
func (s *Session) Restore(blob []byte) error {
	snap, err := UnmarshalSnapshot(blob)
	if err != nil {
		return err
	}
	b, err := s.fs.build(snap)
	if err != nil {
		return err
	}
	if !b.users.HasUser(snap.Username) {
		return Errorf(CodeInvalidSnapshot, "restore", "", "invalid snapshot: unknown user %q", snap.Username)
	}
	s.fs.install(b)
	s.username = snap.Username
	s.cwd = Clean(snap.Cwd)
	if n, ok := s.fs.Lookup(s.cwd); !ok || !n.IsDir() {
		s.cwd = "/"
	}
	return nil
}
