package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/termquest/internal/render"
	"github.com/GriffinCanCode/termquest/internal/shell"
)

// Run starts the full-screen terminal and blocks until the player quits.
func Run(ctx context.Context, sh *shell.Shell) error {
	p := tea.NewProgram(New(ctx, sh), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Exec runs every line of r through sh and writes plain output to out and
// error output to errOut. It stops at an "exit" line or when ctx is done.
func Exec(ctx context.Context, sh *shell.Shell, r io.Reader, out, errOut io.Writer) (failed int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			break
		}
		if ExecLine(ctx, sh, line, out, errOut) {
			failed++
		}
	}
	return failed, scanner.Err()
}

// ExecLine runs one line and reports whether it failed. The editor is not
// available without a terminal.
func ExecLine(ctx context.Context, sh *shell.Shell, line string, out, errOut io.Writer) bool {
	res := sh.Execute(ctx, line)
	switch {
	case res.Editor != nil:
		fmt.Fprintf(errOut, "nano: %s: editor needs an interactive terminal\n", res.Editor.Path)
		return true
	case res.Clear || res.Output == "":
		return res.IsError
	}

	text := res.Output
	if res.IsHTML {
		text = render.Plain(text)
	}
	if res.IsError {
		fmt.Fprintln(errOut, text)
		return true
	}
	fmt.Fprintln(out, text)
	return false
}
