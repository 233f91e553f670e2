package search

import (
	"regexp"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// DefaultMaxPattern bounds the length of a grep pattern.
const DefaultMaxPattern = 1024

// Options control a grep run.
type Options struct {
	Pattern     string
	Paths       []string
	IgnoreCase  bool
	Invert      bool
	LineNumbers bool
	Count       bool
	Recursive   bool
	MaxPattern  int
}

// Match is one matching line.
type Match struct {
	Path string
	Line int
	Text string
}

// FileError records a file that could not be searched.
type FileError struct {
	Path string
	Err  error
}

// FileCount is the number of matching lines in one file.
type FileCount struct {
	Path  string
	Count int
}

// Result collects matches and per-file failures.
type Result struct {
	Matches []Match
	Counts  []FileCount
	Errors  []FileError
}

// Compile builds the matcher for opts. Invalid or oversized patterns
// report "invalid regular expression".
func Compile(opts Options) (*regexp.Regexp, error) {
	limit := opts.MaxPattern
	if limit <= 0 {
		limit = DefaultMaxPattern
	}
	if len(opts.Pattern) > limit {
		return nil, vfs.Errorf(vfs.CodeInvalidRegex, "grep", "", "invalid regular expression: pattern too long")
	}
	expr := opts.Pattern
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, vfs.NewError(vfs.CodeInvalidRegex, "grep", "")
	}
	return re, nil
}

// Grep searches the files named in opts.Paths. Directories are descended
// only with Recursive; without it they are reported as per-file errors.
func Grep(fs *vfs.FileSystem, a vfs.Actor, opts Options) (*Result, error) {
	re, err := Compile(opts)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for _, p := range opts.Paths {
		n, err := fs.Stat(a, p)
		if err != nil {
			res.Errors = append(res.Errors, FileError{Path: p, Err: err})
			continue
		}
		if !n.IsDir() {
			searchFile(fs, a, re, opts, p, p, res)
			continue
		}
		if !opts.Recursive {
			res.Errors = append(res.Errors, FileError{Path: p, Err: vfs.NewError(vfs.CodeIsDirectory, "grep", p)})
			continue
		}
		err = fs.Walk(a, p, func(path string, child vfs.Node) error {
			if !child.IsDir() {
				searchFile(fs, a, re, opts, path, displayPath(p, n.Path, path), res)
			}
			return nil
		})
		if err != nil {
			res.Errors = append(res.Errors, FileError{Path: p, Err: err})
		}
	}
	return res, nil
}

func searchFile(fs *vfs.FileSystem, a vfs.Actor, re *regexp.Regexp, opts Options, path, display string, res *Result) {
	content, err := fs.ReadFile(a, path)
	if err != nil {
		res.Errors = append(res.Errors, FileError{Path: display, Err: err})
		return
	}
	matches := matchLines(re, opts.Invert, display, content)
	if opts.Count {
		res.Counts = append(res.Counts, FileCount{Path: display, Count: len(matches)})
		return
	}
	res.Matches = append(res.Matches, matches...)
}

// GrepText filters piped input.
func GrepText(input string, opts Options) (*Result, error) {
	re, err := Compile(opts)
	if err != nil {
		return nil, err
	}
	matches := matchLines(re, opts.Invert, "", input)
	if opts.Count {
		return &Result{Counts: []FileCount{{Count: len(matches)}}}, nil
	}
	return &Result{Matches: matches}, nil
}

func matchLines(re *regexp.Regexp, invert bool, path, content string) []Match {
	if content == "" {
		return nil
	}
	var out []Match
	for i, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		if re.MatchString(line) != invert {
			out = append(out, Match{Path: path, Line: i + 1, Text: line})
		}
	}
	return out
}

// displayPath spells a walked path the way the user spelled its start. A
// start beginning with "~" is shown expanded, as a shell would pass it.
func displayPath(raw, startAbs, path string) string {
	if strings.HasPrefix(raw, "~") {
		raw = startAbs
	}
	if path == startAbs {
		return raw
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(path, startAbs), "/")
	return strings.TrimSuffix(raw, "/") + "/" + rel
}
