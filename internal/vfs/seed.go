package vfs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/termquest/internal/identity"
)

//go:embed seeds/default.yaml
var defaultSeed []byte

// Seed describes a starting machine: groups, users and tree entries.
type Seed struct {
	DefaultUser string          `yaml:"default_user" toml:"default_user"`
	Groups      []string        `yaml:"groups" toml:"groups"`
	Users       []identity.User `yaml:"users" toml:"users"`
	Entries     []SeedEntry     `yaml:"entries" toml:"entries"`
}

// SeedEntry is one file or directory. Missing parents are created as
// root-owned directories.
type SeedEntry struct {
	Path    string `yaml:"path" toml:"path"`
	Type    string `yaml:"type" toml:"type"`
	Owner   string `yaml:"owner" toml:"owner"`
	Group   string `yaml:"group" toml:"group"`
	Mode    string `yaml:"mode" toml:"mode"`
	Age     string `yaml:"age" toml:"age"`
	Content string `yaml:"content" toml:"content"`
}

// Seed formats accepted by ParseSeed.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// DefaultSeed returns the embedded starting machine.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed, FormatYAML)
}

// ParseSeed decodes a seed document.
func ParseSeed(data []byte, format string) (*Seed, error) {
	var s Seed
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &s, nil
}

// LoadSeedFile reads a seed from disk, choosing the format by extension.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSeed(data, FormatYAML)
	case ".toml":
		return ParseSeed(data, FormatTOML)
	default:
		return nil, fmt.Errorf("unsupported seed file %q", path)
	}
}

// FromSeed builds a filesystem from s.
func FromSeed(s *Seed, opts ...Option) (*FileSystem, error) {
	fs := New(opts...)
	for _, g := range s.Groups {
		if err := fs.users.AddGroup(g); err != nil {
			return nil, fmt.Errorf("seed group %q: %w", g, err)
		}
	}
	for _, u := range s.Users {
		if err := fs.users.AddUser(u); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", u.Name, err)
		}
	}

	entries := append([]SeedEntry(nil), s.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.Count(Clean(entries[i].Path), "/") < strings.Count(Clean(entries[j].Path), "/")
	})
	for _, e := range entries {
		if err := fs.seedEntry(e); err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", e.Path, err)
		}
	}
	return fs, nil
}

func (fs *FileSystem) seedEntry(e SeedEntry) error {
	abs := Clean(e.Path)
	if abs == "/" {
		return fmt.Errorf("cannot redefine root")
	}
	kind := KindFile
	mode := identity.DefaultFileMode
	if e.Type == "dir" || e.Type == typeDir {
		kind = KindDir
		mode = identity.DefaultDirMode
	}
	if e.Mode != "" {
		m, err := identity.ParseModeString(e.Mode)
		if err != nil {
			return err
		}
		mode = m
	}
	owner, group := e.Owner, e.Group
	if owner == "" {
		owner = identity.RootUser
	}
	if group == "" {
		group = owner
	}
	age, err := parseAge(e.Age)
	if err != nil {
		return err
	}

	dir, name := Split(abs)
	parent, err := fs.ensureDir(dir)
	if err != nil {
		return err
	}
	if _, exists := parent.children[name]; exists {
		return fmt.Errorf("duplicate entry")
	}
	n := fs.alloc(name, kind, mode, owner, group)
	n.content = e.Content
	parentTime := parent.modTime
	fs.attach(parent, n)
	parent.modTime = parentTime
	n.modTime = fs.now().Add(-age)
	return nil
}

// ensureDir returns the directory at dir, creating root-owned directories
// along the way.
func (fs *FileSystem) ensureDir(dir string) (*node, error) {
	cur := fs.nodes[fs.root]
	for _, name := range components(dir) {
		cid, ok := cur.children[name]
		if !ok {
			n := fs.alloc(name, KindDir, identity.DefaultDirMode, identity.RootUser, identity.RootUser)
			fs.attach(cur, n)
			cur = n
			continue
		}
		cur = fs.nodes[cid]
		if !cur.isDir() {
			return nil, fmt.Errorf("%s is not a directory", fs.pathOf(cur))
		}
	}
	return cur, nil
}

// parseAge accepts Go durations plus a "d" suffix for days.
func parseAge(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid age %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q", s)
	}
	return d, nil
}
