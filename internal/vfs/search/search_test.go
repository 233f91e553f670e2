package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termquest/internal/vfs"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *vfs.Session {
	t.Helper()
	seed, err := vfs.DefaultSeed()
	require.NoError(t, err)
	fs, err := vfs.FromSeed(seed, vfs.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	s, err := vfs.NewSession(fs, seed.DefaultUser)
	require.NoError(t, err)
	return s
}

func find(t *testing.T, s *vfs.Session, args ...string) []string {
	t.Helper()
	start, f, err := ParseFindArgs(args)
	require.NoError(t, err)
	out, err := Find(s.FS(), s.Actor(), start, f)
	require.NoError(t, err)
	return out
}

func TestFindByName(t *testing.T) {
	s := newSession(t)

	got := find(t, s, "/home/user", "-name", "*.txt")
	assert.Equal(t, []string{
		"/home/user/documents/bonuses.txt",
		"/home/user/documents/notes.txt",
		"/home/user/documents/todo.txt",
	}, got)

	assert.Equal(t, []string{"./telechargements/readme.md"}, find(t, s, "-iname", "README.*"))
	assert.Empty(t, find(t, s, "-name", "README.*"))
}

func TestFindDefaultsToCwd(t *testing.T) {
	s := newSession(t)
	got := find(t, s)
	require.NotEmpty(t, got)
	assert.Equal(t, ".", got[0])
	assert.Contains(t, got, "./mon_projet/main.sh")
}

func TestFindByType(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, []string{
		"documents",
	}, find(t, s, "documents", "-type", "d"))

	files := find(t, s, "mon_projet", "-type", "f")
	assert.Equal(t, []string{"mon_projet/app.log", "mon_projet/main.sh"}, files)
}

func TestFindByAge(t *testing.T) {
	s := newSession(t)

	got := find(t, s, "-type", "f", "-mtime", "+7", "-name", "*.zip")
	assert.Equal(t, []string{"./telechargements/archive.zip"}, got)

	old := find(t, s, "telechargements", "-type", "f", "-mtime", "+7")
	assert.Equal(t, []string{
		"telechargements/archive.zip",
		"telechargements/readme.md",
		"telechargements/report.pdf",
	}, old)

	_, err := s.FS().CreateFile(s.Actor(), "fresh.txt", "new")
	require.NoError(t, err)
	assert.Equal(t, []string{"./fresh.txt"}, find(t, s, "-type", "f", "-mmin", "-2"))

	assert.Equal(t, []string{"./mon_projet/app.log"}, find(t, s, "-name", "*.log", "-mtime", "0"))
}

func TestFindSkipsUnreadableSubtree(t *testing.T) {
	s := newSession(t)
	a := s.Actor()
	_, err := s.FS().CreateDir(a, "secret_zone", false)
	require.NoError(t, err)
	_, err = s.FS().CreateFile(a, "secret_zone/token.txt", "t0k3n")
	require.NoError(t, err)
	_, err = s.FS().Chmod(a, "secret_zone", "000")
	require.NoError(t, err)

	got := find(t, s, "-name", "*.txt")
	assert.NotContains(t, got, "./secret_zone/token.txt")
	assert.NotContains(t, got, "./secret_zone")
	assert.Contains(t, got, "./documents/notes.txt")

	_, _, err = ParseFindArgs([]string{"secret_zone"})
	require.NoError(t, err)
	_, err = Find(s.FS(), a, "secret_zone", Filters{})
	assert.ErrorIs(t, err, vfs.ErrPermissionDenied)
}

func TestFindMissingStart(t *testing.T) {
	s := newSession(t)
	_, err := Find(s.FS(), s.Actor(), "nope", Filters{})
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestParseFindArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing value", []string{"-name"}},
		{"bad type", []string{".", "-type", "x"}},
		{"bad age", []string{"-mtime", "abc"}},
		{"unknown predicate", []string{"-size", "10"}},
		{"bad pattern", []string{"-name", "[abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFindArgs(tt.args)
			assert.ErrorIs(t, err, vfs.ErrInvalidArgument)
		})
	}
}

func TestAgeMatches(t *testing.T) {
	assert.True(t, Age{Cmp: Older, Value: 7}.matches(8))
	assert.False(t, Age{Cmp: Older, Value: 7}.matches(7))
	assert.True(t, Age{Cmp: Newer, Value: 2}.matches(1))
	assert.False(t, Age{Cmp: Newer, Value: 2}.matches(2))
	assert.True(t, Age{Cmp: Exact, Value: 3}.matches(3))
}

func TestGrepFile(t *testing.T) {
	s := newSession(t)
	res, err := Grep(s.FS(), s.Actor(), Options{Pattern: "Error", Paths: []string{"/var/log/system.log"}})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, 3, res.Matches[0].Line)
	assert.Equal(t, "[2024-01-15 11:22:33] Error: connection timeout to remote server", res.Matches[0].Text)
	assert.Equal(t, 5, res.Matches[1].Line)
	assert.Empty(t, res.Errors)
}

func TestGrepFlags(t *testing.T) {
	s := newSession(t)
	a := s.Actor()
	log := []string{"/var/log/system.log"}

	res, err := Grep(s.FS(), a, Options{Pattern: "error", Paths: log})
	require.NoError(t, err)
	assert.Empty(t, res.Matches)

	res, err = Grep(s.FS(), a, Options{Pattern: "error", Paths: log, IgnoreCase: true})
	require.NoError(t, err)
	assert.Len(t, res.Matches, 2)

	res, err = Grep(s.FS(), a, Options{Pattern: "Error", Paths: log, Invert: true})
	require.NoError(t, err)
	assert.Len(t, res.Matches, 4)

	res, err = Grep(s.FS(), a, Options{Pattern: "Error", Paths: log, Count: true})
	require.NoError(t, err)
	assert.Equal(t, []FileCount{{Path: "/var/log/system.log", Count: 2}}, res.Counts)
	assert.Empty(t, res.Matches)
}

func TestGrepInvalidRegex(t *testing.T) {
	s := newSession(t)
	_, err := Grep(s.FS(), s.Actor(), Options{Pattern: "[abc", Paths: []string{"documents/todo.txt"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrInvalidRegex)
	assert.Contains(t, err.Error(), "invalid regular expression")

	_, err = Compile(Options{Pattern: strings.Repeat("a", 20), MaxPattern: 10})
	assert.ErrorIs(t, err, vfs.ErrInvalidRegex)
}

func TestGrepRecursive(t *testing.T) {
	s := newSession(t)
	a := s.Actor()
	_, err := s.FS().CreateFile(a, "documents/locked.txt", "learn nothing")
	require.NoError(t, err)
	_, err = s.FS().Chmod(a, "documents/locked.txt", "000")
	require.NoError(t, err)

	res, err := Grep(s.FS(), a, Options{Pattern: "learn", Paths: []string{"documents"}, Recursive: true})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "documents/todo.txt", res.Matches[0].Path)
	assert.Equal(t, "- learn chmod", res.Matches[0].Text)
	assert.Equal(t, 2, res.Matches[1].Line)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "documents/locked.txt", res.Errors[0].Path)
	assert.ErrorIs(t, res.Errors[0].Err, vfs.ErrPermissionDenied)
}

func TestGrepPerFileErrors(t *testing.T) {
	s := newSession(t)
	res, err := Grep(s.FS(), s.Actor(), Options{
		Pattern: "x",
		Paths:   []string{"documents", "missing.txt", "/root/flag.txt"},
	})
	require.NoError(t, err)
	require.Len(t, res.Errors, 3)
	assert.ErrorIs(t, res.Errors[0].Err, vfs.ErrIsDirectory)
	assert.ErrorIs(t, res.Errors[1].Err, vfs.ErrNotFound)
	assert.ErrorIs(t, res.Errors[2].Err, vfs.ErrPermissionDenied)
}

func TestGrepText(t *testing.T) {
	res, err := GrepText("alpha\nbeta\nalpine\n", Options{Pattern: "^al"})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, 1, res.Matches[0].Line)
	assert.Equal(t, "alpine", res.Matches[1].Text)

	res, err = GrepText("alpha\nbeta\n", Options{Pattern: "al", Count: true, Invert: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Counts[0].Count)

	res, err = GrepText("", Options{Pattern: ".*"})
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, ".", displayPath(".", "/home/user", "/home/user"))
	assert.Equal(t, "./a/b", displayPath(".", "/home/user", "/home/user/a/b"))
	assert.Equal(t, "/etc/passwd", displayPath("/", "/", "/etc/passwd"))
	assert.Equal(t, "docs/x", displayPath("docs/", "/home/user/docs", "/home/user/docs/x"))
	assert.Equal(t, "/home/user/a", displayPath("~", "/home/user", "/home/user/a"))
	assert.Equal(t, "/home/user/t/a", displayPath("~/t", "/home/user/t", "/home/user/t/a"))
}
