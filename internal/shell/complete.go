package shell

import (
	"strings"
)

// Completion is the answer to a tab press. Completed replaces the last
// word of the input and is empty when there is nothing to insert; Options
// lists the candidates when more than one remains.
type Completion struct {
	Completed string   `json:"completed"`
	Options   []string `json:"options"`
	Line      string   `json:"line"`
}

// Complete completes the command name for the first word and a path for
// any later word. Directories the user cannot list offer nothing.
func (s *Shell) Complete(input string) Completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := strings.Split(input, " ")
	var c Completion
	if len(parts) <= 1 {
		c = s.completeCommand(parts[0])
	} else {
		c = s.completePath(parts[len(parts)-1])
	}
	if c.Completed != "" {
		parts[len(parts)-1] = c.Completed
		c.Line = strings.Join(parts, " ")
	} else {
		c.Line = input
	}
	return c
}

func (s *Shell) completeCommand(partial string) Completion {
	var matches []string
	for _, name := range s.registry.Names() {
		if strings.HasPrefix(name, partial) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return Completion{}
	case 1:
		return Completion{Completed: matches[0] + " "}
	}
	c := Completion{Options: matches}
	if common := commonPrefix(matches); common != partial {
		c.Completed = common
	}
	return c
}

func (s *Shell) completePath(partial string) Completion {
	dir, prefix, base := ".", partial, ""
	if i := strings.LastIndex(partial, "/"); i >= 0 {
		dir = partial[:i]
		if dir == "" {
			dir = "/"
		}
		prefix = partial[i+1:]
		base = partial[:i+1]
	}

	fs := s.session.FS()
	a := s.session.Actor()
	n, err := fs.Stat(a, dir)
	if err != nil || !n.IsDir() {
		return Completion{}
	}
	entries, err := fs.List(a, dir)
	if err != nil {
		return Completion{}
	}

	var names, options []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		names = append(names, e.Name)
		if e.IsDir() {
			options = append(options, e.Name+"/")
		} else {
			options = append(options, e.Name)
		}
	}

	switch len(names) {
	case 0:
		return Completion{}
	case 1:
		suffix := " "
		if strings.HasSuffix(options[0], "/") {
			suffix = "/"
		}
		return Completion{Completed: base + names[0] + suffix}
	}
	c := Completion{Options: options}
	if common := commonPrefix(names); common != prefix {
		c.Completed = base + common
	}
	return c
}

func commonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
