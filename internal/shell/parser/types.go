package parser

// Kind identifies a Parsed variant.
type Kind int

const (
	KindEmpty Kind = iota
	KindError
	KindCommand
	KindPipeline
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	case KindCommand:
		return "command"
	case KindPipeline:
		return "pipeline"
	default:
		return "unknown"
	}
}

// Parsed is the result of Parse. The concrete type is one of Empty,
// SyntaxError, *Command or *Pipeline.
type Parsed interface {
	Kind() Kind
}

// Empty is returned for blank input.
type Empty struct{}

func (Empty) Kind() Kind { return KindEmpty }

// SyntaxError describes input that could not be parsed.
type SyntaxError struct {
	Message string
	Raw     string
}

func (SyntaxError) Kind() Kind { return KindError }

func (e SyntaxError) Error() string { return e.Message }

// RedirectMode selects truncating or appending output redirection.
type RedirectMode int

const (
	RedirectOverwrite RedirectMode = iota
	RedirectAppend
)

func (m RedirectMode) String() string {
	if m == RedirectAppend {
		return ">>"
	}
	return ">"
}

// Redirect sends the final output of a command or pipeline to Target.
type Redirect struct {
	Mode   RedirectMode
	Target string
}

// Flag is a parsed option. Boolean flags carry no value.
type Flag struct {
	Value    string
	HasValue bool
}

// Flags maps option names (without dashes) to their values.
type Flags map[string]Flag

// Has reports whether name was given.
func (f Flags) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Any reports whether any of names was given.
func (f Flags) Any(names ...string) bool {
	for _, n := range names {
		if f.Has(n) {
			return true
		}
	}
	return false
}

// Value returns the value of a --name=value flag.
func (f Flags) Value(name string) (string, bool) {
	fl, ok := f[name]
	if !ok || !fl.HasValue {
		return "", false
	}
	return fl.Value, true
}

// Command is a single parsed command.
type Command struct {
	Name     string
	Args     []string
	Flags    Flags
	Raw      string
	Redirect *Redirect
}

func (*Command) Kind() Kind { return KindCommand }

// Pipeline is two or more commands joined by '|'. Redirect applies to the
// output of the last stage.
type Pipeline struct {
	Stages   []*Command
	Raw      string
	Redirect *Redirect
}

func (*Pipeline) Kind() Kind { return KindPipeline }
