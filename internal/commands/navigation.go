package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/render"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

const lsTimeLayout = "Jan _2 15:04"

func navigationCommands() []Command {
	return []Command{
		{
			Name:     "pwd",
			Summary:  "Print the current working directory",
			Usage:    "pwd",
			Category: CategoryNavigation,
			Keywords: []string{"directory", "location", "where"},
			Run:      runPwd,
		},
		{
			Name:     "cd",
			Summary:  "Change the current directory",
			Usage:    "cd [directory]",
			Category: CategoryNavigation,
			Keywords: []string{"directory", "move", "navigate"},
			Run:      runCd,
		},
		{
			Name:     "ls",
			Summary:  "List directory contents",
			Usage:    "ls [-l] [-a] [path...]",
			Category: CategoryNavigation,
			Keywords: []string{"list", "directory", "files", "permissions"},
			Run:      runLs,
		},
	}
}

func runPwd(_ context.Context, inv *Invocation) Result {
	return OK(inv.Actor().Cwd)
}

func runCd(_ context.Context, inv *Invocation) Result {
	target := ""
	if len(inv.Args) > 0 {
		target = inv.Args[0]
	}
	if err := inv.Session.Chdir(target); err != nil {
		return Fail("cd", err)
	}
	return OK("")
}

func runLs(_ context.Context, inv *Invocation) Result {
	long := inv.Flags.Has("l")
	all := inv.Flags.Has("a")
	targets := inv.Args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var (
		blocks []string
		errs   []string
	)
	for _, t := range targets {
		entries, err := inv.FS().List(inv.Actor(), t)
		if err != nil {
			errs = append(errs, render.Escape(fmt.Sprintf("ls: cannot access '%s': %s", t, reason(err))))
			continue
		}
		body := formatListing(entries, long, all)
		if len(targets) > 1 {
			body = render.Escape(t) + ":\n" + body
		}
		blocks = append(blocks, body)
	}

	out := strings.Join(append(errs, blocks...), "\n\n")
	res := HTML(render.Guard(out))
	res.IsError = len(errs) > 0 && len(blocks) == 0
	return res
}

func formatListing(entries []vfs.Node, long, all bool) string {
	var items []string
	for _, n := range entries {
		if !all && strings.HasPrefix(n.Name, ".") {
			continue
		}
		items = append(items, formatEntry(n, long))
	}
	if long {
		return strings.Join(items, "\n")
	}
	return strings.Join(items, "  ")
}

func formatEntry(n vfs.Node, long bool) string {
	name := render.Span(render.ClassFile, n.Name)
	if n.IsDir() {
		name = render.Span(render.ClassDir, n.Name+"/")
	}
	if !long {
		return name
	}
	size := n.Size
	if n.IsDir() {
		size = 4096
	}
	return fmt.Sprintf("%s %-8s %-8s %6d %s %s",
		n.ModeString(),
		render.Escape(n.Owner),
		render.Escape(n.Group),
		size,
		n.ModifiedAt.Format(lsTimeLayout),
		name,
	)
}
