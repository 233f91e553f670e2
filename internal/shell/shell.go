package shell

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/render"
	"github.com/GriffinCanCode/termquest/internal/shell/parser"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// DefaultHistoryLimit caps remembered lines.
const DefaultHistoryLimit = 500

// Recorder receives one observation per executed command.
type Recorder interface {
	ObserveCommand(command, status string, d time.Duration)
}

// Hook is told about every non-empty line after it ran.
type Hook func(line string, parsed parser.Parsed, res commands.Result)

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Shell) { s.recorder = r }
}

// WithHistoryLimit caps the history length.
func WithHistoryLimit(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithMaxPattern bounds grep pattern length.
func WithMaxPattern(n int) Option {
	return func(s *Shell) { s.maxPattern = n }
}

// OnCommand registers the command hook.
func OnCommand(h Hook) Option {
	return func(s *Shell) { s.hook = h }
}

// Shell runs command lines for one session.
type Shell struct {
	mu           sync.Mutex
	session      *vfs.Session
	registry     *commands.Registry
	history      []string
	historyLimit int
	maxPattern   int
	logger       *zap.Logger
	recorder     Recorder
	hook         Hook
}

// New returns a shell for session using registry.
func New(session *vfs.Session, registry *commands.Registry, opts ...Option) *Shell {
	s := &Shell{
		session:      session,
		registry:     registry,
		historyLimit: DefaultHistoryLimit,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the shell's session.
func (s *Shell) Session() *vfs.Session { return s.session }

// Registry returns the shell's command registry.
func (s *Shell) Registry() *commands.Registry { return s.registry }

// History returns a copy of the remembered lines, oldest first.
func (s *Shell) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// SetHistory replaces the history, keeping the newest lines up to the
// limit.
func (s *Shell) SetHistory(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	for _, l := range lines {
		s.remember(l)
	}
}

// Location returns the active user and working directory.
func (s *Shell) Location() (user, cwd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Username(), s.session.Cwd()
}

// Prompt renders "user@termquest:dir$ " with the home directory shown as
// "~".
func (s *Shell) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Prompt(s.session)
}

// Prompt renders the prompt for session.
func Prompt(session *vfs.Session) string {
	cwd := session.Actor().Cwd
	home := session.Home()
	switch {
	case cwd == home:
		cwd = "~"
	case len(cwd) > len(home) && cwd[:len(home)+1] == home+"/":
		cwd = "~" + cwd[len(home):]
	}
	sign := "$"
	if session.Username() == "root" {
		sign = "#"
	}
	return fmt.Sprintf("%s@termquest:%s%s ", session.Username(), cwd, sign)
}

// Execute runs one line.
func (s *Shell) Execute(ctx context.Context, line string) commands.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed := parser.Parse(line)
	if parsed.Kind() == parser.KindEmpty {
		return commands.Result{}
	}
	s.remember(line)

	execID := uuid.NewString()
	start := time.Now()
	name, res := s.run(ctx, parsed)

	status := "ok"
	if res.IsError {
		status = "error"
	}
	if s.recorder != nil {
		s.recorder.ObserveCommand(name, status, time.Since(start))
	}
	s.logger.Debug("command executed",
		zap.String("exec_id", execID),
		zap.String("command", name),
		zap.String("user", s.session.Username()),
		zap.String("status", status),
		zap.Duration("duration", time.Since(start)),
	)
	if s.hook != nil {
		s.hook(line, parsed, res)
	}
	return res
}

// run dispatches parsed and returns the name used for metrics.
func (s *Shell) run(ctx context.Context, parsed parser.Parsed) (string, commands.Result) {
	switch p := parsed.(type) {
	case parser.SyntaxError:
		return "syntax", commands.Result{Output: "termquest: " + p.Message, IsError: true}
	case *parser.Command:
		res := s.stage(ctx, p, nil)
		return p.Name, s.redirect(p.Redirect, res)
	case *parser.Pipeline:
		var (
			stdin *string
			res   commands.Result
		)
		for _, st := range p.Stages {
			res = s.stage(ctx, st, stdin)
			if res.IsError {
				return st.Name, res
			}
			out := plain(res)
			stdin = &out
		}
		last := p.Stages[len(p.Stages)-1]
		return last.Name, s.redirect(p.Redirect, res)
	default:
		return "unknown", commands.Result{}
	}
}

func (s *Shell) stage(ctx context.Context, cmd *parser.Command, stdin *string) (res commands.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked",
				zap.String("command", cmd.Name),
				zap.Any("panic", r),
			)
			res = commands.Failf(cmd.Name, "internal error")
		}
	}()

	inv := &commands.Invocation{
		Name:       cmd.Name,
		Args:       cmd.Args,
		Flags:      cmd.Flags,
		Raw:        cmd.Raw,
		Stdin:      stdin,
		Session:    s.session,
		History:    slices.Clone(s.history),
		MaxPattern: s.maxPattern,
	}
	res, found := s.registry.Execute(ctx, inv)
	if !found {
		return commands.Failf(cmd.Name, "command not found")
	}
	return res
}

// redirect writes the plain text of res to r's target.
func (s *Shell) redirect(r *parser.Redirect, res commands.Result) commands.Result {
	if r == nil || res.IsError {
		return res
	}
	text := plain(res)
	if text != "" {
		text += "\n"
	}
	fs := s.session.FS()
	a := s.session.Actor()
	var err error
	if r.Mode == parser.RedirectAppend {
		_, err = fs.AppendFile(a, r.Target, text)
	} else {
		_, err = fs.WriteFile(a, r.Target, text)
	}
	if err != nil {
		return commands.Fail("termquest", err)
	}
	return commands.Result{}
}

func (s *Shell) remember(line string) {
	s.history = append(s.history, line)
	if over := len(s.history) - s.historyLimit; over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
}

// plain returns res as text suitable for a pipe or a file.
func plain(res commands.Result) string {
	if res.IsHTML {
		return render.Plain(res.Output)
	}
	return res.Output
}

// Snapshot captures the session state.
func (s *Shell) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

// Restore replaces the session state with blob and the history with
// lines. On error neither changes.
func (s *Shell) Restore(blob []byte, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Restore(blob); err != nil {
		return err
	}
	s.history = nil
	for _, l := range lines {
		s.remember(l)
	}
	return nil
}

// SaveFile writes content to path as the active user. Front ends call it
// when the editor opened by nano is saved.
func (s *Shell) SaveFile(path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.session.FS().WriteFile(s.session.Actor(), path, content)
	return err
}
