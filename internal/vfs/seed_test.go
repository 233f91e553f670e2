package vfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	s := newTestSession(t)
	fs := s.FS()

	assert.Equal(t, "/home/user", s.Cwd())
	for _, g := range []string{"security", "admin", "marketing"} {
		assert.True(t, fs.Users().HasGroup(g), g)
	}

	passwd, ok := fs.Lookup("/etc/passwd")
	require.True(t, ok)
	assert.Equal(t, "root", passwd.Owner)

	tmp, ok := fs.Lookup("/tmp")
	require.True(t, ok)
	assert.Equal(t, "rwxrwxrwx", tmp.Mode.String())

	archive, ok := fs.Lookup("/home/user/telechargements/archive.zip")
	require.True(t, ok)
	assert.True(t, testNow.Sub(archive.ModifiedAt) > 7*24*time.Hour)

	log, ok := fs.Lookup("/var/log/system.log")
	require.True(t, ok)
	assert.Contains(t, log.Content, "[2024-01-15 11:22:33] Error: connection timeout to remote server")
}

func TestParseSeedTOML(t *testing.T) {
	doc := `
default_user = "alice"
groups = ["staff"]

[[users]]
name = "alice"
groups = ["staff"]

[[entries]]
path = "/srv/data/report.txt"
owner = "alice"
group = "staff"
mode = "rw-r-----"
age = "2d"
content = "quarterly"
`
	seed, err := ParseSeed([]byte(doc), FormatTOML)
	require.NoError(t, err)
	fs, err := FromSeed(seed, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	n, ok := fs.Lookup("/srv/data/report.txt")
	require.True(t, ok)
	assert.Equal(t, "alice", n.Owner)
	assert.Equal(t, "rw-r-----", n.Mode.String())
	assert.Equal(t, testNow.Add(-48*time.Hour), n.ModifiedAt)

	srv, ok := fs.Lookup("/srv")
	require.True(t, ok)
	assert.Equal(t, "root", srv.Owner)
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("default_user: root\nentries:\n  - {path: /opt, type: dir}\n"), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root", seed.DefaultUser)

	_, err = LoadSeedFile(filepath.Join(dir, "seed.ini"))
	assert.Error(t, err)
}

func TestSeedRejectsBadEntries(t *testing.T) {
	_, err := FromSeed(&Seed{Entries: []SeedEntry{{Path: "/a", Mode: "bogus"}}})
	assert.Error(t, err)

	_, err = FromSeed(&Seed{Entries: []SeedEntry{{Path: "/a"}, {Path: "/a"}}})
	assert.Error(t, err)

	_, err = FromSeed(&Seed{Entries: []SeedEntry{{Path: "/a", Age: "soon"}}})
	assert.Error(t, err)
}
