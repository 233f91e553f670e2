package parser

import (
	"regexp"
	"strings"
)

const (
	errUnmatchedQuote = "syntax error: unmatched quote"
	errNewline        = "syntax error near unexpected token `newline'"
	errPipe           = "syntax error near unexpected token `|'"
)

// passthroughOptions are single-dash words that find reads as positional
// predicates.
var passthroughOptions = map[string]bool{
	"-name":  true,
	"-iname": true,
	"-type":  true,
	"-mtime": true,
	"-mmin":  true,
}

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// Parse parses one shell line.
func Parse(line string) Parsed {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Empty{}
	}
	if !balanced(trimmed) {
		return SyntaxError{Message: errUnmatchedQuote, Raw: line}
	}

	body, redirect, err := extractRedirect(trimmed)
	if err != "" {
		return SyntaxError{Message: err, Raw: line}
	}

	segments := Split(body)
	if len(segments) > 1 {
		p := &Pipeline{Raw: line, Redirect: redirect}
		for _, seg := range segments {
			seg = strings.TrimSpace(seg)
			cmd := parseSingle(seg)
			if cmd == nil {
				return SyntaxError{Message: errPipe, Raw: line}
			}
			p.Stages = append(p.Stages, cmd)
		}
		return p
	}

	cmd := parseSingle(strings.TrimSpace(body))
	if cmd == nil {
		return Empty{}
	}
	cmd.Redirect = redirect
	return cmd
}

// parseSingle classifies the tokens of one pipeline segment. It returns nil
// when the segment has no command word.
func parseSingle(segment string) *Command {
	tokens := Tokenize(segment)
	if len(tokens) == 0 || tokens[0] == "" {
		return nil
	}

	cmd := &Command{
		Name:  tokens[0],
		Args:  []string{},
		Flags: Flags{},
		Raw:   segment,
	}
	for _, tok := range tokens[1:] {
		switch {
		case strings.HasPrefix(tok, "--"):
			name := tok[2:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				cmd.Flags[name[:eq]] = Flag{Value: name[eq+1:], HasValue: true}
			} else {
				cmd.Flags[name] = Flag{}
			}
		case passthroughOptions[tok], negativeNumber.MatchString(tok):
			cmd.Args = append(cmd.Args, tok)
		case len(tok) > 1 && tok[0] == '-' && !strings.HasPrefix(tok, "-/"):
			for _, r := range tok[1:] {
				cmd.Flags[string(r)] = Flag{}
			}
		default:
			cmd.Args = append(cmd.Args, tok)
		}
	}
	return cmd
}

// Tokenize splits s on unquoted spaces and removes quoting. A trailing lone
// backslash is kept literally.
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		started bool
		single  bool
		double  bool
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && !single:
			escaped = true
			started = true
		case r == '\'' && !double:
			single = !single
			started = true
		case r == '"' && !single:
			double = !double
			started = true
		case (r == ' ' || r == '\t') && !single && !double:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// Split cuts s on unquoted, unescaped '|'. Quotes and escapes are kept in
// the segments for Tokenize.
func Split(s string) []string {
	var (
		segments []string
		current  strings.Builder
		single   bool
		double   bool
		escaped  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case r == '|' && !single && !double:
			segments = append(segments, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	return append(segments, current.String())
}

// balanced reports whether every quote in s is closed.
func balanced(s string) bool {
	var single, double, escaped bool
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		}
	}
	return !single && !double
}

// extractRedirect finds the last unquoted '>' or '>>' and returns the text
// before it and the parsed target.
func extractRedirect(s string) (string, *Redirect, string) {
	var single, double, escaped bool
	at := -1
	mode := RedirectOverwrite
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && !single:
			escaped = true
		case c == '\'' && !double:
			single = !single
		case c == '"' && !single:
			double = !double
		case c == '>' && !single && !double:
			at = i
			mode = RedirectOverwrite
			if i+1 < len(s) && s[i+1] == '>' {
				mode = RedirectAppend
				i++
			}
		}
	}
	if at < 0 {
		return s, nil, ""
	}

	start := at + 1
	if mode == RedirectAppend {
		start++
	}
	target := strings.Join(Tokenize(strings.TrimSpace(s[start:])), " ")
	if target == "" {
		return s, nil, errNewline
	}
	return strings.TrimSpace(s[:at]), &Redirect{Mode: mode, Target: target}, ""
}

// Rest returns segment with its first word removed, quoting intact, so a
// prefix command such as sudo can parse what follows.
func Rest(segment string) string {
	s := strings.TrimLeft(segment, " \t")
	var single, double, escaped bool
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case (r == ' ' || r == '\t') && !single && !double:
			return strings.TrimSpace(s[i:])
		}
	}
	return ""
}
