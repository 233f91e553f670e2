package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// Age compares a node's age against N units: Newer means "-N", Older "+N"
// and Exact "N".
type Age struct {
	Cmp   int
	Value int
}

const (
	Exact = 0
	Older = 1
	Newer = -1
)

// matches reports whether an age of units satisfies a.
func (a Age) matches(units int) bool {
	switch a.Cmp {
	case Older:
		return units > a.Value
	case Newer:
		return units < a.Value
	default:
		return units == a.Value
	}
}

// Filters are AND-composed find predicates. Zero values match everything.
type Filters struct {
	Name  string
	IName string
	Type  vfs.Kind
	Typed bool
	MTime *Age
	MMin  *Age
}

// ParseFindArgs splits find arguments into the start path and predicates.
// The start path defaults to ".".
func ParseFindArgs(args []string) (string, Filters, error) {
	start := "."
	var f Filters
	i := 0
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		start = args[0]
		i = 1
	}
	for ; i < len(args); i++ {
		opt := args[i]
		if i+1 >= len(args) {
			return "", f, vfs.Errorf(vfs.CodeInvalidArgument, "find", "", "missing argument to '%s'", opt)
		}
		val := args[i+1]
		i++
		switch opt {
		case "-name":
			f.Name = val
		case "-iname":
			f.IName = val
		case "-type":
			switch val {
			case "f":
				f.Type = vfs.KindFile
			case "d":
				f.Type = vfs.KindDir
			default:
				return "", f, vfs.Errorf(vfs.CodeInvalidArgument, "find", "", "unknown argument to -type: %s", val)
			}
			f.Typed = true
		case "-mtime", "-mmin":
			age, err := parseAge(val)
			if err != nil {
				return "", f, vfs.Errorf(vfs.CodeInvalidArgument, "find", "", "invalid argument '%s' to '%s'", val, opt)
			}
			if opt == "-mtime" {
				f.MTime = &age
			} else {
				f.MMin = &age
			}
		default:
			return "", f, vfs.Errorf(vfs.CodeInvalidArgument, "find", "", "unknown predicate '%s'", opt)
		}
	}
	if err := f.validate(); err != nil {
		return "", f, err
	}
	return start, f, nil
}

func parseAge(s string) (Age, error) {
	a := Age{Cmp: Exact}
	switch {
	case strings.HasPrefix(s, "+"):
		a.Cmp = Older
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		a.Cmp = Newer
		s = s[1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return a, vfs.NewError(vfs.CodeInvalidArgument, "find", s)
	}
	a.Value = n
	return a, nil
}

func (f Filters) validate() error {
	for _, p := range []string{f.Name, f.IName} {
		if p != "" && !doublestar.ValidatePattern(p) {
			return vfs.Errorf(vfs.CodeInvalidArgument, "find", "", "invalid pattern '%s'", p)
		}
	}
	return nil
}

// Match reports whether n satisfies every predicate at time now.
func (f Filters) Match(n vfs.Node, now time.Time) bool {
	if f.Name != "" {
		if ok, _ := doublestar.Match(f.Name, n.Name); !ok {
			return false
		}
	}
	if f.IName != "" {
		if ok, _ := doublestar.Match(strings.ToLower(f.IName), strings.ToLower(n.Name)); !ok {
			return false
		}
	}
	if f.Typed && n.Kind != f.Type {
		return false
	}
	age := now.Sub(n.ModifiedAt)
	if f.MTime != nil && !f.MTime.matches(int(age/(24*time.Hour))) {
		return false
	}
	if f.MMin != nil && !f.MMin.matches(int(age/time.Minute)) {
		return false
	}
	return true
}

// Find returns the paths under start that satisfy f, in depth-first
// pre-order, spelled relative to start as given.
func Find(fs *vfs.FileSystem, a vfs.Actor, start string, f Filters) ([]string, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	now := fs.Now()
	startAbs := fs.Resolve(a, start)
	var out []string
	err := fs.Walk(a, start, func(path string, n vfs.Node) error {
		if f.Match(n, now) {
			out = append(out, displayPath(start, startAbs, path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
