package identity

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
)

// NamePattern restricts user and group names.
var NamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// User is an account of the simulated machine.
type User struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	PrimaryGroup string   `json:"primaryGroup" yaml:"primary_group" toml:"primary_group"`
	Supplemental []string `json:"groups,omitempty" yaml:"groups" toml:"groups"`
	Home         string   `json:"home" yaml:"home" toml:"home"`
}

// HomeFor returns the conventional home directory of name.
func HomeFor(name string) string {
	if name == RootUser {
		return "/root"
	}
	return "/home/" + name
}

// Directory holds users and groups. Group membership is derived from users.
type Directory struct {
	users  map[string]*User
	groups map[string]struct{}
}

// NewDirectory returns a directory containing only root.
func NewDirectory() *Directory {
	d := &Directory{
		users:  make(map[string]*User),
		groups: make(map[string]struct{}),
	}
	d.groups[RootUser] = struct{}{}
	d.users[RootUser] = &User{Name: RootUser, PrimaryGroup: RootUser, Home: HomeFor(RootUser)}
	return d
}

// AddGroup registers a group. Adding an existing group is a no-op.
func (d *Directory) AddGroup(name string) error {
	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	d.groups[name] = struct{}{}
	return nil
}

// HasGroup reports whether group exists.
func (d *Directory) HasGroup(name string) bool {
	_, ok := d.groups[name]
	return ok
}

// HasUser reports whether user exists.
func (d *Directory) HasUser(name string) bool {
	_, ok := d.users[name]
	return ok
}

// User returns a copy of the named user.
func (d *Directory) User(name string) (User, bool) {
	u, ok := d.users[name]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

// Users returns every user sorted by name.
func (d *Directory) Users() []User {
	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Groups returns every group name sorted.
func (d *Directory) Groups() []string {
	out := make([]string, 0, len(d.groups))
	for g := range d.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Members returns users whose primary or supplemental group is group.
func (d *Directory) Members(group string) []string {
	var out []string
	for _, u := range d.users {
		if u.PrimaryGroup == group || slices.Contains(u.Supplemental, group) {
			out = append(out, u.Name)
		}
	}
	sort.Strings(out)
	return out
}

// AddUser validates and registers u. A missing primary group defaults to a
// group named after the user and is created on demand; supplemental groups
// must already exist.
func (d *Directory) AddUser(u User) error {
	if !NamePattern.MatchString(u.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, u.Name)
	}
	if d.HasUser(u.Name) {
		return fmt.Errorf("%w: %s", ErrUserExists, u.Name)
	}
	if u.PrimaryGroup == "" {
		u.PrimaryGroup = u.Name
	}
	if !NamePattern.MatchString(u.PrimaryGroup) {
		return fmt.Errorf("%w: %q", ErrInvalidName, u.PrimaryGroup)
	}
	if err := d.checkGroups(u.Supplemental); err != nil {
		return err
	}
	if u.Home == "" {
		u.Home = HomeFor(u.Name)
	}

	d.groups[u.PrimaryGroup] = struct{}{}
	cp := cloneUser(&u)
	cp.Supplemental = dedupe(cp.Supplemental)
	d.users[u.Name] = &cp
	return nil
}

// SetGroups replaces or, with appendMode, extends the supplemental groups
// of name.
func (d *Directory) SetGroups(name string, groups []string, appendMode bool) error {
	u, ok := d.users[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	if err := d.checkGroups(groups); err != nil {
		return err
	}
	if appendMode {
		u.Supplemental = dedupe(append(u.Supplemental, groups...))
	} else {
		u.Supplemental = dedupe(slices.Clone(groups))
	}
	return nil
}

// RemoveUser deletes name. Root cannot be removed.
func (d *Directory) RemoveUser(name string) error {
	if name == RootUser {
		return fmt.Errorf("%w: %s", ErrProtectedUser, name)
	}
	if _, ok := d.users[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	delete(d.users, name)
	return nil
}

// Subject derives the acting identity of name.
func (d *Directory) Subject(name string) (Subject, error) {
	u, ok := d.users[name]
	if !ok {
		return Subject{}, fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	groups := make(map[string]struct{}, len(u.Supplemental)+1)
	groups[u.PrimaryGroup] = struct{}{}
	for _, g := range u.Supplemental {
		groups[g] = struct{}{}
	}
	return Subject{Name: u.Name, PrimaryGroup: u.PrimaryGroup, Groups: groups, Admin: u.Name == RootUser}, nil
}

// Clone returns a deep copy.
func (d *Directory) Clone() *Directory {
	out := &Directory{
		users:  make(map[string]*User, len(d.users)),
		groups: make(map[string]struct{}, len(d.groups)),
	}
	for g := range d.groups {
		out.groups[g] = struct{}{}
	}
	for name, u := range d.users {
		cp := cloneUser(u)
		out.users[name] = &cp
	}
	return out
}

func (d *Directory) checkGroups(groups []string) error {
	for _, g := range groups {
		if !d.HasGroup(g) {
			return fmt.Errorf("%w: %s", ErrUnknownGroup, g)
		}
	}
	return nil
}

func cloneUser(u *User) User {
	cp := *u
	cp.Supplemental = slices.Clone(u.Supplemental)
	return cp
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
