package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec(t *testing.T) {
	sh := newShell(t)
	var out, errOut bytes.Buffer
	script := strings.Join([]string{
		"pwd",
		"cd documents",
		"ls",
		"cat /root/flag.txt",
		"nano draft.txt",
		"grep -c learn todo.txt",
	}, "\n")

	failed, err := Exec(context.Background(), sh, strings.NewReader(script), &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "/home/user\n"))
	assert.Contains(t, text, "notes.txt")
	assert.NotContains(t, text, "<span")
	assert.True(t, strings.HasSuffix(text, "2\n"))

	assert.Contains(t, errOut.String(), "Permission denied")
	assert.Contains(t, errOut.String(), "nano: /home/user/documents/draft.txt: editor needs an interactive terminal")
}

func TestExecStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	failed, err := Exec(ctx, newShell(t), strings.NewReader("echo hi\n"), &out, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, failed)
	assert.Empty(t, out.String())
}

func TestExecStopsAtExit(t *testing.T) {
	var out, errOut bytes.Buffer
	failed, err := Exec(context.Background(), newShell(t), strings.NewReader("echo one\n  exit \necho two\n"), &out, &errOut)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, "one\n", out.String())
	assert.Empty(t, errOut.String())
}
