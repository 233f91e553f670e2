package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFileInheritsSubject(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	n, err := fs.CreateFile(a, "documents/new.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "user", n.Owner)
	assert.Equal(t, "user", n.Group)
	assert.Equal(t, "rw-r--r--", n.Mode.String())
	assert.Equal(t, "/home/user/documents/new.txt", n.Path)

	_, err = fs.CreateFile(a, "documents/new.txt", "again")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = fs.CreateFile(a, "missing/dir/file.txt", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fs.CreateFile(a, "documents/notes.txt/child", "")
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestCreateRejectsUnsafePaths(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.CreateFile(a, "/home/user/documents/bad<script>.txt", "x")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = fs.WriteFile(a, "/home/user/documents/../secrets.txt", "x")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, ok := fs.Lookup("/home/user/secrets.txt")
	assert.False(t, ok)

	_, err = fs.WriteFile(a, "/home/user/documents/file..txt", "ok")
	assert.NoError(t, err)
}

func TestCreateDirRecursive(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	n, err := fs.CreateDir(a, "a/b/c", true)
	require.NoError(t, err)
	assert.Equal(t, "/home/user/a/b/c", n.Path)
	assert.True(t, n.IsDir())

	_, err = fs.CreateDir(a, "a/b/c", true)
	assert.NoError(t, err)

	_, err = fs.CreateDir(a, "a/b/c", false)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = fs.CreateDir(a, "x/y", false)
	assert.ErrorIs(t, err, ErrNotFound)

	// No partial chain is left behind when the first creation is refused.
	_, err = fs.CreateDir(a, "/etc/app/conf.d", true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, ok := fs.Lookup("/etc/app")
	assert.False(t, ok)
}

func TestWritePermissionHasNoSideEffects(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.WriteFile(a, "/etc/new.conf", "x")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, ok := fs.Lookup("/etc/new.conf")
	assert.False(t, ok)

	_, err = fs.WriteFile(a, "/etc/passwd", "hacked")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	n, _ := fs.Lookup("/etc/passwd")
	assert.Contains(t, n.Content, "root:x:0:0")

	_, err = fs.WriteFile(rootActor(t, s), "/etc/new.conf", "x")
	assert.NoError(t, err)
}

func TestWriteAndAppend(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.WriteFile(a, "/tmp/out.txt", "one\n")
	require.NoError(t, err)
	_, err = fs.AppendFile(a, "/tmp/out.txt", "two\n")
	require.NoError(t, err)
	content, err := fs.ReadFile(a, "/tmp/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", content)

	_, err = fs.WriteFile(a, "/tmp", "x")
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestReadPermissions(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	// bonuses.txt is rw-rw---- user:security; the owner triad applies.
	_, err := fs.ReadFile(a, "documents/bonuses.txt")
	assert.NoError(t, err)

	_, err = fs.Chown(rootActor(t, s), "/home/user/documents/bonuses.txt", "root:security")
	require.NoError(t, err)
	_, err = fs.ReadFile(a, "documents/bonuses.txt")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "documents/bonuses.txt: Permission denied", err.Error())

	_, err = fs.ReadFile(a, "/root/flag.txt")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	content, err := fs.ReadFile(rootActor(t, s), "/root/flag.txt")
	require.NoError(t, err)
	assert.Contains(t, content, "Only root")

	_, err = fs.ReadFile(a, "documents")
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestTraversalNeedsExecute(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.CreateDir(a, "locked", false)
	require.NoError(t, err)
	_, err = fs.CreateFile(a, "locked/secret.txt", "s")
	require.NoError(t, err)
	_, err = fs.Chmod(a, "locked", "u-x")
	require.NoError(t, err)

	_, err = fs.ReadFile(a, "locked/secret.txt")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = fs.Stat(a, "locked/secret.txt")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestList(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	entries, err := fs.List(a, "documents")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"bonuses.txt", "notes.txt", "todo.txt"}, names)

	_, err = fs.List(a, "/root")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	single, err := fs.List(a, "documents/notes.txt")
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "notes.txt", single[0].Name)
}

func TestTouch(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	before, _ := fs.Lookup("/home/user/documents/notes.txt")
	n, err := fs.Touch(a, "documents/notes.txt")
	require.NoError(t, err)
	assert.True(t, n.ModifiedAt.After(before.ModifiedAt))
	assert.Equal(t, before.Content, n.Content)

	n, err = fs.Touch(a, "fresh.txt")
	require.NoError(t, err)
	assert.Equal(t, "", n.Content)
}

func TestRemove(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	assert.ErrorIs(t, fs.Remove(a, "documents", false), ErrIsDirectory)
	require.NoError(t, fs.Remove(a, "documents/todo.txt", false))
	_, ok := fs.Lookup("/home/user/documents/todo.txt")
	assert.False(t, ok)

	require.NoError(t, fs.Remove(a, "mon_projet", true))
	_, ok = fs.Lookup("/home/user/mon_projet/main.sh")
	assert.False(t, ok)

	assert.ErrorIs(t, fs.Remove(a, "/etc/passwd", false), ErrPermissionDenied)
	assert.ErrorIs(t, fs.Remove(rootActor(t, s), "/", true), ErrNotPermitted)
}

func TestRemoveRecursiveChecksWholeSubtreeFirst(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	_, err := fs.CreateDir(a, "tree/inner", true)
	require.NoError(t, err)
	_, err = fs.CreateFile(a, "tree/top.txt", "t")
	require.NoError(t, err)
	_, err = fs.Chmod(a, "tree/inner", "u-w")
	require.NoError(t, err)

	assert.ErrorIs(t, fs.Remove(a, "tree", true), ErrPermissionDenied)
	_, ok := fs.Lookup("/home/user/tree/top.txt")
	assert.True(t, ok)
}

func TestRemoveDir(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	assert.ErrorIs(t, fs.RemoveDir(a, "documents"), ErrNotEmpty)
	assert.ErrorIs(t, fs.RemoveDir(a, ".bashrc"), ErrNotDirectory)
	_, err := fs.CreateDir(a, "empty", false)
	require.NoError(t, err)
	assert.NoError(t, fs.RemoveDir(a, "empty"))
}

func TestCopy(t *testing.T) {
	s := newTestSession(t)
	fs, a := s.FS(), s.Actor()

	require.NoError(t, fs.Copy(a, "documents/notes.txt", "/tmp/", false))
	n, ok := fs.Lookup("/tmp/notes.txt")
	require.True(t, ok)
	assert.Equal(t, "user", n.Owner)
	assert.Contains(t, n.Content, "Linux Game")

	assert.ErrorIs(t, fs.Copy(a, "documents", "/tmp/docs", false), ErrIsDirectory)
	require.NoError(t, fs.Copy(a, "documents", "/tmp/docs", true))
	_, ok = fs.Lookup("/tmp/docs/bonuses.txt")
	assert.True(t, ok)

	assert.ErrorIs(t, fs.Copy(a, "documents", "documents/sub", true), ErrIntoItself)
	assert.ErrorIs(t, fs.Copy(a, "/root/flag.txt", "/tmp/", false), ErrPermissionDenied)
	assert.ErrorIs(t, fs.Copy(a, "documents/notes.txt", "documents", false), ErrInvalidArgument)
}
