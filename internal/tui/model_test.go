package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/shell"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newShell(t *testing.T) *shell.Shell {
	t.Helper()
	seed, err := vfs.DefaultSeed()
	require.NoError(t, err)
	fs, err := vfs.FromSeed(seed, vfs.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	sess, err := vfs.NewSession(fs, seed.DefaultUser)
	require.NoError(t, err)
	return shell.New(sess, commands.Builtin())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	next, ok := result.(Model)
	require.True(t, ok)
	return next, cmd
}

func run(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	m, _ = update(t, m, keyMsg("enter"))
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSubmitRunsCommand(t *testing.T) {
	m := New(context.Background(), newShell(t))
	assert.Equal(t, "user@termquest:~$ ", m.input.Prompt)

	m = run(t, m, "cd documents")
	assert.Equal(t, "user@termquest:~/documents$ ", m.input.Prompt)
	assert.Equal(t, []string{"user@termquest:~$ cd documents"}, m.Scrollback())
	assert.Empty(t, m.input.Value())

	m = run(t, m, "echo hello world")
	assert.Equal(t, "hello world", m.Scrollback()[len(m.Scrollback())-1])
}

func TestSubmitShowsErrorsAndMarkup(t *testing.T) {
	m := New(context.Background(), newShell(t))

	m = run(t, m, "cat /root/flag.txt")
	assert.Contains(t, m.Scrollback()[1], "Permission denied")

	m = run(t, m, "ls")
	assert.Contains(t, m.View(), "documents")
	assert.NotContains(t, m.View(), "<span")
}

func TestClear(t *testing.T) {
	m := New(context.Background(), newShell(t))
	m = run(t, m, "echo one")
	require.NotEmpty(t, m.Scrollback())

	m = run(t, m, "clear")
	assert.Empty(t, m.Scrollback())

	m = run(t, m, "echo two")
	m, _ = update(t, m, keyMsg("ctrl+l"))
	assert.Empty(t, m.Scrollback())
}

func TestTabCompletion(t *testing.T) {
	m := New(context.Background(), newShell(t))

	m.input.SetValue("cat docu")
	m, _ = update(t, m, keyMsg("tab"))
	assert.Equal(t, "cat documents/", m.input.Value())

	m.input.SetValue("wh")
	m, _ = update(t, m, keyMsg("tab"))
	assert.Equal(t, "wh", m.input.Value())
	assert.Contains(t, m.Scrollback()[len(m.Scrollback())-1], "whatis  whoami")
}

func TestHistoryRecall(t *testing.T) {
	m := New(context.Background(), newShell(t))
	m = run(t, m, "echo one")
	m = run(t, m, "echo two")

	m.input.SetValue("ec")
	m, _ = update(t, m, keyMsg("up"))
	assert.Equal(t, "echo two", m.input.Value())
	m, _ = update(t, m, keyMsg("up"))
	assert.Equal(t, "echo one", m.input.Value())
	m, _ = update(t, m, keyMsg("up"))
	assert.Equal(t, "echo one", m.input.Value())

	m, _ = update(t, m, keyMsg("down"))
	assert.Equal(t, "echo two", m.input.Value())
	m, _ = update(t, m, keyMsg("down"))
	assert.Equal(t, "ec", m.input.Value())
	m, _ = update(t, m, keyMsg("down"))
	assert.Equal(t, "ec", m.input.Value())
}

func TestEditorSaveAndClose(t *testing.T) {
	sh := newShell(t)
	m := New(context.Background(), sh)

	m = run(t, m, "nano draft.txt")
	path, ok := m.Editing()
	require.True(t, ok)
	assert.Equal(t, "/home/user/draft.txt", path)
	assert.Contains(t, m.View(), "nano  /home/user/draft.txt")

	m.editor.SetValue("hello\nworld\n")
	m, _ = update(t, m, keyMsg("ctrl+o"))
	assert.Equal(t, "[ Wrote 2 lines ]", m.status)

	n, found := sh.Session().FS().Lookup("/home/user/draft.txt")
	require.True(t, found)
	assert.Equal(t, "hello\nworld\n", n.Content)

	m, _ = update(t, m, keyMsg("ctrl+x"))
	_, ok = m.Editing()
	assert.False(t, ok)
	assert.Contains(t, m.Scrollback()[len(m.Scrollback())-1], "Wrote 2 lines")
	assert.True(t, m.input.Focused())
}

func TestEditorSaveDenied(t *testing.T) {
	m := New(context.Background(), newShell(t))
	m = run(t, m, "nano /etc/hostname")
	require.Contains(t, m.editor.Value(), "termquest")

	m, _ = update(t, m, keyMsg("ctrl+o"))
	assert.Contains(t, m.status, "Permission denied")

	m, _ = update(t, m, keyMsg("esc"))
	_, ok := m.Editing()
	assert.False(t, ok)
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), newShell(t))
	_, cmd := update(t, m, keyMsg("ctrl+d"))
	assert.True(t, isQuit(cmd))

	m.input.SetValue("exit")
	m, cmd = update(t, m, keyMsg("enter"))
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())

	m = New(context.Background(), newShell(t))
	m = run(t, m, "nano notes.txt")
	_, cmd = update(t, m, keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestWindowResize(t *testing.T) {
	m := New(context.Background(), newShell(t))
	for i := 0; i < 10; i++ {
		m = run(t, m, "echo line")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 5})
	assert.Equal(t, 60, m.width)
	assert.Len(t, m.Scrollback(), 20)
	assert.Equal(t, 5, len(splitLines(m.View())))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
