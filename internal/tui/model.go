package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/shell"
)

// MaxScrollback bounds the lines kept above the prompt.
const MaxScrollback = 1000

// Model is the full-screen terminal: a scrollback, a prompt line and the
// nano editor that replaces both while a file is open.
type Model struct {
	ctx   context.Context
	shell *shell.Shell
	keys  KeyMap

	input   textinput.Model
	editor  textarea.Model
	editing *commands.EditorAction
	status  string

	lines   []string
	histIdx int
	draft   string

	width  int
	height int
	quit   bool
}

// New builds a terminal bound to sh.
func New(ctx context.Context, sh *shell.Shell) Model {
	ti := textinput.New()
	ti.Prompt = sh.Prompt()
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 16 * 1024
	ti.Focus()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	return Model{
		ctx:     ctx,
		shell:   sh,
		keys:    DefaultKeyMap(),
		input:   ti,
		editor:  ta,
		histIdx: len(sh.History()),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		m.editor.SetWidth(msg.Width)
		m.editor.SetHeight(max(msg.Height-4, 3))
		return m, nil

	case tea.KeyMsg:
		// ctrl+c always quits
		if msg.String() == "ctrl+c" {
			m.quit = true
			return m, tea.Quit
		}
		if m.editing != nil {
			return m.updateEditor(msg)
		}
		return m.updatePrompt(msg)
	}

	var cmd tea.Cmd
	if m.editing != nil {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.recall(-1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.recall(1)
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.lines = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.appendLines(m.input.Prompt + line)
	m.input.SetValue("")
	m.draft = ""

	if strings.TrimSpace(line) == "exit" {
		m.quit = true
		return m, tea.Quit
	}

	res := m.shell.Execute(m.ctx, line)
	switch {
	case res.Clear:
		m.lines = nil
	case res.Editor != nil:
		return m.openEditor(res.Editor)
	case res.Output != "":
		m.appendLines(format(res))
	}

	m.input.Prompt = m.shell.Prompt()
	m.histIdx = len(m.shell.History())
	return m, nil
}

// format renders a result for the scrollback.
func format(res commands.Result) string {
	out := res.Output
	if res.IsHTML {
		out = Styled(out)
	}
	if res.IsError {
		return ErrorStyle.Render(out)
	}
	return out
}

func (m *Model) complete() {
	value := m.input.Value()
	c := m.shell.Complete(value)
	if len(c.Options) > 1 {
		m.appendLines(m.input.Prompt+value, MutedStyle.Render(strings.Join(c.Options, "  ")))
	}
	if c.Line != value {
		m.input.SetValue(c.Line)
		m.input.CursorEnd()
	}
}

// recall walks the history; dir is -1 for older and 1 for newer. The line
// being typed is kept as the draft below the newest entry.
func (m *Model) recall(dir int) {
	history := m.shell.History()
	next := m.histIdx + dir
	if next < 0 || next > len(history) {
		return
	}
	if m.histIdx == len(history) {
		m.draft = m.input.Value()
	}
	m.histIdx = next
	if next == len(history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(history[next])
	}
	m.input.CursorEnd()
}

func (m *Model) appendLines(text ...string) {
	for _, t := range text {
		m.lines = append(m.lines, strings.Split(t, "\n")...)
	}
	if over := len(m.lines) - MaxScrollback; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m Model) openEditor(action *commands.EditorAction) (tea.Model, tea.Cmd) {
	m.editing = action
	m.status = ""
	m.editor.SetValue(action.Content)
	m.input.Blur()
	return m, m.editor.Focus()
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		content := m.editor.Value()
		if err := m.shell.SaveFile(m.editing.Path, content); err != nil {
			m.status = "nano: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("[ Wrote %d lines ]", lineCount(content))
		return m, nil
	case key.Matches(msg, m.keys.Close):
		return m.closeEditor()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) closeEditor() (tea.Model, tea.Cmd) {
	if m.status != "" {
		m.appendLines(MutedStyle.Render(m.status))
	}
	m.editing = nil
	m.status = ""
	m.editor.Blur()
	m.editor.Reset()
	m.input.Prompt = m.shell.Prompt()
	m.histIdx = len(m.shell.History())
	return m, m.input.Focus()
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(content, "\n"), "\n") + 1
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	if m.editing != nil {
		return m.viewEditor()
	}

	lines := m.lines
	if keep := m.height - 1; keep > 0 && len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) viewEditor() string {
	var b strings.Builder
	b.WriteString(EditorTitleStyle.Width(m.width).Render("nano  " + m.editing.Path))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
	}
	b.WriteString(HelpStyle.Render(m.keys.EditorHelpText()))
	return b.String()
}

// Scrollback returns the lines above the prompt.
func (m Model) Scrollback() []string {
	return m.lines
}

// Editing returns the file open in the editor, if any.
func (m Model) Editing() (path string, ok bool) {
	if m.editing == nil {
		return "", false
	}
	return m.editing.Path, true
}
