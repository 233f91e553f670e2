package commands

import (
	"context"
	"fmt"
	"strings"
)

var categoryOrder = []Category{
	CategoryNavigation,
	CategoryFiles,
	CategoryText,
	CategorySearch,
	CategoryPermissions,
	CategoryUsers,
	CategorySystem,
}

func systemCommands() []Command {
	return []Command{
		{Name: "history", Summary: "Show previously entered commands", Usage: "history", Category: CategorySystem,
			Keywords: []string{"previous", "commands", "recall"}, Run: runHistory},
		{Name: "clear", Summary: "Clear the terminal screen", Usage: "clear", Category: CategorySystem,
			Keywords: []string{"screen", "reset"}, Run: runClear},
		{Name: "help", Summary: "List available commands", Usage: "help", Category: CategorySystem,
			Keywords: []string{"commands", "usage", "list"}, Run: runHelp},
		{Name: "man", Summary: "Show the manual page of a command", Usage: "man command", Category: CategorySystem,
			Keywords: []string{"manual", "documentation", "help"}, Run: runMan},
		{Name: "whatis", Summary: "Display one-line manual page descriptions", Usage: "whatis command...", Category: CategorySystem,
			Keywords: []string{"describe", "manual", "summary"}, Run: runWhatis},
		{Name: "apropos", Summary: "Search command descriptions by keyword", Usage: "apropos keyword", Category: CategorySystem,
			Keywords: []string{"search", "manual", "keyword"}, Run: runApropos},
	}
}

func runHistory(_ context.Context, inv *Invocation) Result {
	lines := make([]string, len(inv.History))
	for i, h := range inv.History {
		lines[i] = fmt.Sprintf("%5d  %s", i+1, h)
	}
	return OK(strings.Join(lines, "\n"))
}

func runClear(_ context.Context, _ *Invocation) Result {
	return Result{Clear: true}
}

func runHelp(_ context.Context, inv *Invocation) Result {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cat := range categoryOrder {
		cmds := inv.Registry().List(&cat)
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s%s:\n", strings.ToUpper(string(cat[:1])), cat[1:])
		for _, c := range cmds {
			fmt.Fprintf(&b, "  %-10s %s\n", c.Name, c.Summary)
		}
	}
	b.WriteString("\nType 'man <command>' for details.")
	return OK(b.String())
}

func runMan(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("man", "What manual page do you want?")
	}
	cmd, ok := inv.Registry().Get(inv.Args[0])
	if !ok {
		return Failf("man", "No manual entry for %s", inv.Args[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "NAME\n    %s - %s\n\nSYNOPSIS\n    %s\n", cmd.Name, cmd.Summary, cmd.Usage)
	if cmd.Manual != "" {
		b.WriteString("\nDESCRIPTION\n")
		for _, line := range strings.Split(strings.TrimSpace(cmd.Manual), "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	return OK(strings.TrimSuffix(b.String(), "\n"))
}

func runWhatis(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("whatis", "what?")
	}
	var lines []string
	missing := 0
	for _, name := range inv.Args {
		cmd, ok := inv.Registry().Get(name)
		if !ok {
			lines = append(lines, name+": nothing appropriate.")
			missing++
			continue
		}
		lines = append(lines, cmd.Name+" - "+cmd.Summary)
	}
	return Result{Output: strings.Join(lines, "\n"), IsError: missing == len(inv.Args)}
}

func runApropos(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("apropos", "what?")
	}
	query := strings.Join(inv.Args, " ")
	found := inv.Registry().Discover(query, 0)
	if len(found) == 0 {
		return Failf("apropos", "%s: nothing appropriate.", query)
	}
	lines := make([]string, len(found))
	for i, c := range found {
		lines[i] = c.Name + " - " + c.Summary
	}
	return OK(strings.Join(lines, "\n"))
}
