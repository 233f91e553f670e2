// Package parser turns a raw shell line into a structured command.
//
// The grammar is a small subset of POSIX sh: single quotes, double quotes,
// backslash escapes, pipelines joined by '|' and a single trailing output
// redirect ('>' or '>>'). Parse is pure; the same line always yields the
// same result.
//
// Result Variants:
//   - Empty: blank input
//   - SyntaxError: unmatched quote, empty pipeline segment, missing target
//   - *Command: one command with positional args and flags
//   - *Pipeline: two or more commands, optionally redirected
//
// Flag Classification:
//   - --name and --name=value become long flags
//   - -name, -iname, -type, -mtime, -mmin stay positional for find
//   - negative integers ("-3") stay positional
//   - "-la" expands to the boolean flags l and a
//
// Example Usage:
//
//	switch p := parser.Parse(`grep -i "error" /var/log/system.log | head -n 2`).(type) {
//	case *parser.Pipeline:
//		for _, stage := range p.Stages { ... }
//	case parser.SyntaxError:
//		fmt.Println(p.Message)
//	}
package parser
