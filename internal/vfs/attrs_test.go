package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChmodOwner(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	n, err := fs.Chmod(a, "documents/bonuses.txt", "640")
	require.NoError(t, err)
	assert.Equal(t, "rw-r-----", n.Mode.String())

	n, err = fs.Chmod(a, "documents/bonuses.txt", "u+x,g-r,o=r")
	require.NoError(t, err)
	assert.Equal(t, "rwx-w-r--", n.Mode.String())
}

func TestChmodInvalidLeavesModeUnchanged(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.Chmod(a, "documents/bonuses.txt", "u+q")
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Contains(t, err.Error(), "invalid mode")

	n, _ := fs.Lookup("/home/user/documents/bonuses.txt")
	assert.Equal(t, "rw-rw----", n.Mode.String())
}

func TestChmodNonOwnerNotPermitted(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	for _, expr := range []string{"777", "u+x", "garbage"} {
		_, err := fs.Chmod(a, "/etc/passwd", expr)
		require.ErrorIs(t, err, ErrNotPermitted, expr)
		assert.Contains(t, err.Error(), "Operation not permitted")
		assert.NotErrorIs(t, err, ErrPermissionDenied)
	}

	n, err := fs.Chmod(rootActor(t, s), "/etc/passwd", "600")
	require.NoError(t, err)
	assert.Equal(t, "rw-------", n.Mode.String())
}

func TestChown(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()
	root := rootActor(t, s)

	_, err := fs.Chown(a, "/etc/passwd", "user")
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = fs.AddUser(root, "ops1", nil)
	require.NoError(t, err)

	n, err := fs.Chown(root, "/home/user/documents/notes.txt", "ops1:security")
	require.NoError(t, err)
	assert.Equal(t, "ops1", n.Owner)
	assert.Equal(t, "security", n.Group)

	n, err = fs.Chown(root, "/home/user/documents/notes.txt", ":marketing")
	require.NoError(t, err)
	assert.Equal(t, "ops1", n.Owner)
	assert.Equal(t, "marketing", n.Group)

	n, err = fs.Chown(root, "/home/user/documents/notes.txt", "user:")
	require.NoError(t, err)
	assert.Equal(t, "user", n.Group)

	_, err = fs.Chown(root, "/home/user/documents/notes.txt", "ghost")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = fs.Chown(root, "/home/user/documents/notes.txt", "user:ghosts")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
