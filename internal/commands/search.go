package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/render"
	"github.com/GriffinCanCode/termquest/internal/vfs/search"
)

func searchCommands() []Command {
	return []Command{
		{Name: "find", Summary: "Search for files in a directory hierarchy",
			Usage:    "find [path] [-name P] [-iname P] [-type f|d] [-mtime N] [-mmin N]",
			Category: CategorySearch, Keywords: []string{"search", "locate", "files", "name"}, Run: runFind},
		{Name: "grep", Summary: "Search for patterns in files",
			Usage:    "grep [-i] [-v] [-n] [-c] [-r] pattern [path...]",
			Category: CategorySearch, Keywords: []string{"search", "pattern", "regex", "match", "text"}, Run: runGrep},
	}
}

func runFind(_ context.Context, inv *Invocation) Result {
	start, filters, err := search.ParseFindArgs(inv.Args)
	if err != nil {
		return Fail("find", err)
	}
	paths, err := search.Find(inv.FS(), inv.Actor(), start, filters)
	if err != nil {
		return Fail("find", err)
	}
	return OK(strings.Join(paths, "\n"))
}

func runGrep(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("grep", "usage: grep [-i] [-v] [-n] [-c] [-r] pattern [path...]")
	}
	opts := search.Options{
		Pattern:     inv.Args[0],
		Paths:       inv.Args[1:],
		IgnoreCase:  inv.Flags.Any("i", "ignore-case"),
		Invert:      inv.Flags.Any("v", "invert-match"),
		LineNumbers: inv.Flags.Any("n", "line-number"),
		Count:       inv.Flags.Any("c", "count"),
		Recursive:   inv.Flags.Any("r", "R", "recursive"),
		MaxPattern:  inv.MaxPattern,
	}
	if len(opts.Paths) == 0 && opts.Recursive {
		opts.Paths = []string{"."}
	}

	var (
		res *search.Result
		err error
	)
	if len(opts.Paths) == 0 {
		if inv.Stdin == nil {
			return Failf("grep", "missing file operand")
		}
		res, err = search.GrepText(*inv.Stdin, opts)
	} else {
		res, err = search.Grep(inv.FS(), inv.Actor(), opts)
	}
	if err != nil {
		return Fail("grep", err)
	}

	re, _ := search.Compile(opts)
	if opts.Invert {
		re = nil
	}
	prefix := opts.Recursive || len(opts.Paths) > 1

	var lines []string
	for _, e := range res.Errors {
		lines = append(lines, render.Span(render.ClassError, fmt.Sprintf("grep: %s: %s", e.Path, reason(e.Err))))
	}
	for _, c := range res.Counts {
		line := fmt.Sprint(c.Count)
		if prefix {
			line = render.Span(render.ClassPath, c.Path) + ":" + line
		}
		lines = append(lines, line)
	}
	for _, m := range res.Matches {
		var b strings.Builder
		if prefix {
			b.WriteString(render.Span(render.ClassPath, m.Path) + ":")
		}
		if opts.LineNumbers {
			fmt.Fprintf(&b, "%d:", m.Line)
		}
		b.WriteString(render.Highlight(m.Text, re))
		lines = append(lines, b.String())
	}

	out := HTML(render.Guard(strings.Join(lines, "\n")))
	out.IsError = len(res.Errors) > 0 && len(res.Matches) == 0 && len(res.Counts) == 0
	return out
}
