package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/shell/parser"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newShell(t *testing.T, opts ...Option) *Shell {
	t.Helper()
	seed, err := vfs.DefaultSeed()
	require.NoError(t, err)
	fs, err := vfs.FromSeed(seed, vfs.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	sess, err := vfs.NewSession(fs, seed.DefaultUser)
	require.NoError(t, err)
	return New(sess, commands.Builtin(), opts...)
}

func exec(t *testing.T, s *Shell, line string) commands.Result {
	t.Helper()
	return s.Execute(context.Background(), line)
}

func content(t *testing.T, s *Shell, abs string) string {
	t.Helper()
	n, ok := s.Session().FS().Lookup(abs)
	require.True(t, ok, abs)
	return n.Content
}

type recorded struct {
	command, status string
}

type fakeRecorder struct {
	seen []recorded
}

func (f *fakeRecorder) ObserveCommand(command, status string, _ time.Duration) {
	f.seen = append(f.seen, recorded{command, status})
}

func TestExecuteSimple(t *testing.T) {
	s := newShell(t)
	assert.Equal(t, "/home/user", exec(t, s, "pwd").Output)

	res := exec(t, s, "   ")
	assert.Equal(t, commands.Result{}, res)
	assert.Equal(t, []string{"pwd"}, s.History())
}

func TestExecuteErrors(t *testing.T) {
	s := newShell(t)

	res := exec(t, s, `echo "open`)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "unmatched quote")

	res = exec(t, s, "frobnicate now")
	assert.True(t, res.IsError)
	assert.Equal(t, "frobnicate: command not found", res.Output)

	res = exec(t, s, "ls |")
	assert.True(t, res.IsError)
}

func TestPipeline(t *testing.T) {
	s := newShell(t)
	assert.Equal(t, "2", exec(t, s, "cat /var/log/system.log | grep Error | wc -l").Output)
	assert.Equal(t, "[2024-01-15 10:00:01] System boot completed",
		exec(t, s, "head -n 3 /var/log/system.log | head -n 1").Output)

	res := exec(t, s, "cat missing.txt | wc -l")
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "cat:")
}

func TestRedirect(t *testing.T) {
	s := newShell(t)

	res := exec(t, s, "echo hello > greet.txt")
	require.False(t, res.IsError, res.Output)
	assert.Empty(t, res.Output)
	exec(t, s, "echo world >> greet.txt")
	assert.Equal(t, "hello\nworld\n", content(t, s, "/home/user/greet.txt"))

	exec(t, s, `echo "a | b" | grep a > /tmp/out.txt`)
	assert.Equal(t, "a | b\n", content(t, s, "/tmp/out.txt"))

	exec(t, s, `echo "<b>" | grep b > markup.txt`)
	assert.Equal(t, "<b>\n", content(t, s, "/home/user/markup.txt"))

	res = exec(t, s, "echo x > /etc/x")
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "Permission denied")

	res = exec(t, s, "echo x > 'a<b'")
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "Invalid path")

	res = exec(t, s, "cat nope > out.txt")
	assert.True(t, res.IsError)
	_, ok := s.Session().FS().Lookup("/home/user/out.txt")
	assert.False(t, ok)
}

func TestSudoThroughShell(t *testing.T) {
	s := newShell(t)
	assert.Equal(t, "Only root can read this file.", exec(t, s, "sudo cat /root/flag.txt").Output)
	assert.Equal(t, "user", s.Session().Username())

	res := exec(t, s, "sudo rm -rf /")
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "blocked")
}

func TestHistory(t *testing.T) {
	s := newShell(t, WithHistoryLimit(2))
	exec(t, s, "pwd")
	exec(t, s, "whoami")
	exec(t, s, "history")
	assert.Equal(t, []string{"whoami", "history"}, s.History())

	s.SetHistory([]string{"a", "b", "c"})
	assert.Equal(t, []string{"b", "c"}, s.History())
}

func TestHookAndRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	var lines []string
	var kinds []parser.Kind
	var failed []bool
	s := newShell(t,
		WithRecorder(rec),
		OnCommand(func(line string, p parser.Parsed, res commands.Result) {
			lines = append(lines, line)
			kinds = append(kinds, p.Kind())
			failed = append(failed, res.IsError)
		}),
	)

	exec(t, s, "pwd")
	exec(t, s, "ls | wc -l")
	exec(t, s, "cat /root/flag.txt")
	exec(t, s, "")

	assert.Equal(t, []string{"pwd", "ls | wc -l", "cat /root/flag.txt"}, lines)
	assert.Equal(t, []parser.Kind{parser.KindCommand, parser.KindPipeline, parser.KindCommand}, kinds)
	assert.Equal(t, []bool{false, false, true}, failed)
	assert.Equal(t, []recorded{{"pwd", "ok"}, {"wc", "ok"}, {"cat", "error"}}, rec.seen)
}

func TestPanicRecovery(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Registry().Register(commands.Command{
		Name: "boom",
		Run:  func(context.Context, *commands.Invocation) commands.Result { panic("kaboom") },
	}))
	res := exec(t, s, "boom")
	assert.True(t, res.IsError)
	assert.Equal(t, "boom: internal error", res.Output)
	assert.Equal(t, "/home/user", exec(t, s, "pwd").Output)
}

func TestPrompt(t *testing.T) {
	s := newShell(t)
	assert.Equal(t, "user@termquest:~$ ", s.Prompt())
	exec(t, s, "cd documents")
	assert.Equal(t, "user@termquest:~/documents$ ", s.Prompt())
	exec(t, s, "cd /tmp")
	assert.Equal(t, "user@termquest:/tmp$ ", s.Prompt())
	require.NoError(t, s.Session().SwitchUser("root"))
	assert.Equal(t, "root@termquest:/tmp# ", s.Prompt())
}

func TestCompleteCommand(t *testing.T) {
	s := newShell(t)

	c := s.Complete("pw")
	assert.Equal(t, "pwd ", c.Completed)
	assert.Equal(t, "pwd ", c.Line)

	c = s.Complete("ch")
	assert.Empty(t, c.Completed)
	assert.Equal(t, []string{"chmod", "chown"}, c.Options)

	c = s.Complete("hi")
	assert.Equal(t, "history ", c.Completed)

	c = s.Complete("zz")
	assert.Empty(t, c.Completed)
	assert.Empty(t, c.Options)
	assert.Equal(t, "zz", c.Line)
}

func TestCompletePath(t *testing.T) {
	s := newShell(t)

	c := s.Complete("cat doc")
	assert.Equal(t, "documents/", c.Completed)
	assert.Equal(t, "cat documents/", c.Line)

	c = s.Complete("cat documents/n")
	assert.Equal(t, "documents/notes.txt ", c.Completed)

	c = s.Complete("cat documents/")
	assert.Empty(t, c.Completed)
	assert.Equal(t, []string{"bonuses.txt", "notes.txt", "todo.txt"}, c.Options)

	c = s.Complete("cd ~/tele")
	assert.Equal(t, "~/telechargements/", c.Completed)

	c = s.Complete("ls /ro")
	assert.Equal(t, "/root/", c.Completed)

	c = s.Complete("cat /root/f")
	assert.Empty(t, c.Completed)
	assert.Empty(t, c.Options)

	c = s.Complete("cat nowhere/x")
	assert.Empty(t, c.Completed)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "ch", commonPrefix([]string{"chmod", "chown"}))
	assert.Equal(t, "", commonPrefix([]string{"a", "b"}))
	assert.Equal(t, "", commonPrefix(nil))
}

func TestSnapshotRestore(t *testing.T) {
	s := newShell(t)
	exec(t, s, "mkdir saved")
	exec(t, s, "cd saved")
	blob, err := s.Snapshot()
	require.NoError(t, err)

	other := newShell(t)
	require.NoError(t, other.Restore(blob, []string{"mkdir saved", "cd saved"}))
	assert.Equal(t, "user@termquest:~/saved$ ", other.Prompt())
	assert.Equal(t, []string{"mkdir saved", "cd saved"}, other.History())

	err = other.Restore([]byte("{not json"), []string{"lost"})
	assert.Error(t, err)
	assert.Equal(t, []string{"mkdir saved", "cd saved"}, other.History())
}

func TestSaveFile(t *testing.T) {
	s := newShell(t)
	res := exec(t, s, "nano documents/draft.txt")
	require.NotNil(t, res.Editor)

	require.NoError(t, s.SaveFile(res.Editor.Path, "first draft\n"))
	assert.Equal(t, "first draft\n", content(t, s, "/home/user/documents/draft.txt"))

	err := s.SaveFile("/etc/passwd", "root::0:0")
	assert.ErrorIs(t, err, vfs.ErrPermissionDenied)
}
