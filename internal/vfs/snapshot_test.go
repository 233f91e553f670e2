package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSession(t)
	fs := s.FS()
	root := rootActor(t, s)

	_, err := fs.AddUser(root, "ops1", []string{"security"})
	require.NoError(t, err)
	require.NoError(t, s.Chdir("documents"))
	_, err = fs.WriteFile(s.Actor(), "draft.txt", "v1")
	require.NoError(t, err)

	blob, err := s.Snapshot()
	require.NoError(t, err)

	_, err = fs.WriteFile(s.Actor(), "draft.txt", "v2")
	require.NoError(t, err)
	require.NoError(t, fs.DeleteUser(root, "ops1", true))
	require.NoError(t, s.Chdir("/tmp"))

	require.NoError(t, s.Restore(blob))
	assert.Equal(t, "/home/user/documents", s.Cwd())
	assert.Equal(t, "user", s.Username())
	assert.True(t, fs.Users().HasUser("ops1"))
	assert.Equal(t, []string{"ops1"}, fs.Users().Members("security"))

	content, err := fs.ReadFile(s.Actor(), "draft.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", content)

	n, ok := fs.Lookup("/home/user/documents/bonuses.txt")
	require.True(t, ok)
	assert.Equal(t, "rw-rw----", n.Mode.String())
	assert.Equal(t, "security", n.Group)
	assert.Equal(t, testNow.AddDate(0, 0, -3), n.ModifiedAt.UTC())
}

func TestRestoreRejectsMalformedInput(t *testing.T) {
	blobs := map[string]string{
		"not json":       `{{{`,
		"missing root":   `{"version":1,"username":"user","cwd":"/"}`,
		"bad version":    `{"version":9,"root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root"}}`,
		"root is a file": `{"version":1,"username":"root","root":{"name":"","type":"file","permissions":"rw-r--r--","owner":"root","group":"root"}}`,
		"bad mode": `{"version":1,"username":"root","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root",
			"children":[{"name":"a","type":"file","permissions":"rwz------","owner":"root","group":"root"}]}}`,
		"duplicate names": `{"version":1,"username":"root","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root",
			"children":[{"name":"a","type":"file","permissions":"rw-------","owner":"root","group":"root"},
			{"name":"a","type":"file","permissions":"rw-------","owner":"root","group":"root"}]}}`,
		"file with children": `{"version":1,"username":"root","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root",
			"children":[{"name":"a","type":"file","permissions":"rw-------","owner":"root","group":"root",
			"children":[{"name":"b","type":"file","permissions":"rw-------","owner":"root","group":"root"}]}]}}`,
		"slash in name": `{"version":1,"username":"root","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root",
			"children":[{"name":"a/b","type":"file","permissions":"rw-------","owner":"root","group":"root"}]}}`,
		"unknown user": `{"version":1,"username":"ghost","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root"}}`,
	}

	for name, blob := range blobs {
		t.Run(name, func(t *testing.T) {
			s := newTestSession(t)
			before, err := s.Snapshot()
			require.NoError(t, err)

			err = s.Restore([]byte(blob))
			require.ErrorIs(t, err, ErrInvalidSnapshot)

			after, err := s.Snapshot()
			require.NoError(t, err)
			assert.Equal(t, before, after)

			// Live state survives a failed restore.
			assert.Equal(t, "user", s.Username())
			assert.Equal(t, "/home/user", s.Cwd())
			_, ok := s.FS().Lookup("/home/user/documents/notes.txt")
			assert.True(t, ok)
		})
	}
}

func TestRestoreFallsBackWhenCwdMissing(t *testing.T) {
	s := newTestSession(t)
	blob := `{"version":1,"username":"root","cwd":"/nowhere","root":{"name":"","type":"directory","permissions":"rwxr-xr-x","owner":"root","group":"root"}}`
	require.NoError(t, s.Restore([]byte(blob)))
	assert.Equal(t, "/", s.Cwd())
	assert.Equal(t, "root", s.Username())
}

func TestElevateRestoresUser(t *testing.T) {
	s := newTestSession(t)
	var inside string
	s.Elevate(func() {
		inside = s.Username()
		assert.True(t, s.Actor().Subject.Admin)
	})
	assert.Equal(t, "root", inside)
	assert.Equal(t, "user", s.Username())
	assert.False(t, s.Actor().Subject.Admin)
}

func TestChdir(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Chdir("documents"))
	assert.Equal(t, "/home/user/documents", s.Cwd())
	require.NoError(t, s.Chdir(".."))
	assert.Equal(t, "/home/user", s.Cwd())

	assert.ErrorIs(t, s.Chdir(".bashrc"), ErrNotDirectory)
	assert.ErrorIs(t, s.Chdir("/root"), ErrPermissionDenied)
	assert.ErrorIs(t, s.Chdir("nowhere"), ErrNotFound)
	assert.Equal(t, "/home/user", s.Cwd())

	require.NoError(t, s.Chdir("/tmp"))
	require.NoError(t, s.Chdir(""))
	assert.Equal(t, "/home/user", s.Cwd())
}
