package identity

// RootUser is the administrator account.
const RootUser = "root"

// Subject is the acting user together with its effective groups.
type Subject struct {
	Name         string
	PrimaryGroup string
	Groups       map[string]struct{}
	Admin        bool
}

// InGroup reports whether group is in the subject's effective set.
func (s Subject) InGroup(group string) bool {
	_, ok := s.Groups[group]
	return ok
}

// Ownership is the part of a node that access decisions depend on.
type Ownership struct {
	Owner string
	Group string
	Mode  Mode
	Dir   bool
}

// triad selects owner, group or other bits for the subject. Exactly one
// triad applies: the owner triad wins even if it grants less than group.
func triad(s Subject, o Ownership) Mode {
	switch {
	case s.Name == o.Owner:
		return o.Mode.Owner()
	case s.InGroup(o.Group):
		return o.Mode.Group()
	default:
		return o.Mode.Other()
	}
}

// CanRead reports whether s may read o.
func CanRead(s Subject, o Ownership) bool {
	return s.Admin || triad(s, o)&ModeRead != 0
}

// CanWrite reports whether s may write o.
func CanWrite(s Subject, o Ownership) bool {
	return s.Admin || triad(s, o)&ModeWrite != 0
}

// CanExecute reports whether s may execute o, or traverse it for
// directories. Administrators may traverse any directory but need at least
// one execute bit to run a file.
func CanExecute(s Subject, o Ownership) bool {
	if s.Admin {
		return o.Dir || o.Mode&0o111 != 0
	}
	return triad(s, o)&ModeExec != 0
}

// IsOwner reports whether s owns o.
func IsOwner(s Subject, o Ownership) bool {
	return s.Name == o.Owner
}

// CanAdminister reports whether s may change mode or ownership of o.
func CanAdminister(s Subject, o Ownership) bool {
	return s.Admin || IsOwner(s, o)
}
