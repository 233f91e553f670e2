package commands

import (
	"context"
	"fmt"
	"strings"
)

const defaultLines = 10

func textCommands() []Command {
	return []Command{
		{Name: "head", Summary: "Print the first lines of files", Usage: "head [-n N] [file...]", Category: CategoryText,
			Keywords: []string{"lines", "beginning", "top", "read"}, Run: runHead},
		{Name: "tail", Summary: "Print the last lines of files", Usage: "tail [-n N] [file...]", Category: CategoryText,
			Keywords: []string{"lines", "end", "bottom", "log", "read"}, Run: runTail},
		{Name: "wc", Summary: "Count lines, words and bytes", Usage: "wc [-l] [-w] [-c] [file...]", Category: CategoryText,
			Keywords: []string{"count", "lines", "words", "bytes"}, Run: runWc},
		{Name: "less", Summary: "View file contents page by page", Usage: "less [file]", Category: CategoryText,
			Keywords: []string{"read", "view", "pager"}, Run: runLess},
	}
}

func runHead(_ context.Context, inv *Invocation) Result {
	return slice(inv, "head", func(lines []string, n int) []string {
		if n < len(lines) {
			return lines[:n]
		}
		return lines
	})
}

func runTail(_ context.Context, inv *Invocation) Result {
	return slice(inv, "tail", func(lines []string, n int) []string {
		if n < len(lines) {
			return lines[len(lines)-n:]
		}
		return lines
	})
}

func slice(inv *Invocation, name string, pick func([]string, int) []string) Result {
	n, args, err := lineCount(inv, defaultLines)
	if err != nil {
		return Fail(name, err)
	}
	text, err := input(inv, args)
	if err != nil {
		return Fail(name, err)
	}
	return OK(strings.Join(pick(splitLines(text), n), "\n"))
}

func runWc(_ context.Context, inv *Invocation) Result {
	showLines := inv.Flags.Any("l", "lines")
	showWords := inv.Flags.Any("w", "words")
	showBytes := inv.Flags.Any("c", "bytes")
	if !showLines && !showWords && !showBytes {
		showLines, showWords, showBytes = true, true, true
	}

	count := func(text, label string) string {
		var cols []string
		if showLines {
			cols = append(cols, fmt.Sprint(strings.Count(text, "\n")))
		}
		if showWords {
			cols = append(cols, fmt.Sprint(len(strings.Fields(text))))
		}
		if showBytes {
			cols = append(cols, fmt.Sprint(len(text)))
		}
		if label != "" {
			cols = append(cols, label)
		}
		return strings.Join(cols, " ")
	}

	if len(inv.Args) == 0 {
		if inv.Stdin == nil {
			return Failf("wc", "missing file operand")
		}
		// Piped output drops its final newline, so even empty input is
		// one line, as "echo ''" prints one.
		text := *inv.Stdin
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return OK(count(text, ""))
	}

	var out []string
	for _, p := range inv.Args {
		text, err := inv.FS().ReadFile(inv.Actor(), p)
		if err != nil {
			return Fail("wc", err)
		}
		out = append(out, count(text, p))
	}
	return OK(strings.Join(out, "\n"))
}

func runLess(_ context.Context, inv *Invocation) Result {
	text, err := input(inv, inv.Args)
	if err != nil {
		return Fail("less", err)
	}
	return OK(strings.TrimSuffix(text, "\n"))
}
