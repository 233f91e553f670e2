package commands

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/termquest/internal/shell/parser"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// Category groups commands in help output.
type Category string

const (
	CategoryNavigation  Category = "navigation"
	CategoryFiles       Category = "files"
	CategoryPermissions Category = "permissions"
	CategoryUsers       Category = "users"
	CategorySearch      Category = "search"
	CategoryText        Category = "text"
	CategorySystem      Category = "system"
)

// Handler runs one command invocation.
type Handler func(ctx context.Context, inv *Invocation) Result

// Command describes a shell builtin.
type Command struct {
	Name     string
	Summary  string
	Usage    string
	Category Category
	Keywords []string
	Manual   string
	Run      Handler
}

// Invocation carries everything a handler may look at.
type Invocation struct {
	Name    string
	Args    []string
	Flags   parser.Flags
	Raw     string
	Stdin   *string
	Session *vfs.Session
	History []string
	// MaxPattern bounds grep patterns; zero means the search default.
	MaxPattern int

	registry *Registry
}

// Registry returns the registry the invocation was dispatched from.
func (inv *Invocation) Registry() *Registry { return inv.registry }

// Actor is shorthand for the session's current actor.
func (inv *Invocation) Actor() vfs.Actor { return inv.Session.Actor() }

// FS is shorthand for the session's filesystem.
func (inv *Invocation) FS() *vfs.FileSystem { return inv.Session.FS() }

// EditorAction asks the front end to open the simplified editor.
type EditorAction struct {
	Action  string `json:"action"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Result is the outcome of a command. Output is plain text unless IsHTML
// is set, in which case it is display markup with all text escaped.
type Result struct {
	Output  string        `json:"output"`
	IsError bool          `json:"isError"`
	IsHTML  bool          `json:"isHtml"`
	Clear   bool          `json:"clear,omitempty"`
	Editor  *EditorAction `json:"nano,omitempty"`
}

// OK returns plain-text output.
func OK(output string) Result {
	return Result{Output: output}
}

// HTML returns display markup.
func HTML(markup string) Result {
	return Result{Output: markup, IsHTML: true}
}

// Fail returns an error result prefixed with the command name.
func Fail(name string, err error) Result {
	return Result{Output: fmt.Sprintf("%s: %v", name, err), IsError: true}
}

// Failf formats an error result prefixed with the command name.
func Failf(name, format string, args ...any) Result {
	return Result{Output: name + ": " + fmt.Sprintf(format, args...), IsError: true}
}
