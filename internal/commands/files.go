package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/termquest/internal/vfs"
)

func fileCommands() []Command {
	return []Command{
		{Name: "cat", Summary: "Print file contents", Usage: "cat [file...]", Category: CategoryFiles,
			Keywords: []string{"read", "show", "display", "concatenate"}, Run: runCat},
		{Name: "echo", Summary: "Display a line of text", Usage: "echo [text...]", Category: CategoryText,
			Keywords: []string{"print", "write", "text"}, Run: runEcho},
		{Name: "touch", Summary: "Create empty files or update timestamps", Usage: "touch file...", Category: CategoryFiles,
			Keywords: []string{"create", "timestamp", "new"}, Run: runTouch},
		{Name: "mkdir", Summary: "Create directories", Usage: "mkdir [-p] directory...", Category: CategoryFiles,
			Keywords: []string{"create", "directory", "folder"}, Run: runMkdir},
		{Name: "rm", Summary: "Remove files or directories", Usage: "rm [-r] [-f] path...", Category: CategoryFiles,
			Keywords: []string{"delete", "remove", "erase"}, Run: runRm},
		{Name: "rmdir", Summary: "Remove empty directories", Usage: "rmdir directory...", Category: CategoryFiles,
			Keywords: []string{"delete", "directory", "folder"}, Run: runRmdir},
		{Name: "mv", Summary: "Move or rename files", Usage: "mv source... destination", Category: CategoryFiles,
			Keywords: []string{"move", "rename"}, Run: runMv},
		{Name: "cp", Summary: "Copy files and directories", Usage: "cp [-r] source destination", Category: CategoryFiles,
			Keywords: []string{"copy", "duplicate"}, Run: runCp},
		{Name: "chmod", Summary: "Change file permissions", Usage: "chmod [-R] mode path...", Category: CategoryPermissions,
			Keywords: []string{"permission", "mode", "access", "rwx"}, Run: runChmod},
		{Name: "chown", Summary: "Change file owner and group", Usage: "chown [-R] owner[:group] path...", Category: CategoryPermissions,
			Keywords: []string{"owner", "group", "permission"}, Run: runChown},
		{Name: "nano", Summary: "Edit files in a simplified editor", Usage: "nano file", Category: CategoryText,
			Keywords: []string{"edit", "editor", "write"}, Run: runNano},
		{Name: "file", Summary: "Determine file type", Usage: "file path...", Category: CategoryFiles,
			Keywords: []string{"type", "mime", "format"}, Run: runFile},
	}
}

func runCat(_ context.Context, inv *Invocation) Result {
	out, err := input(inv, inv.Args)
	if err != nil {
		return Fail("cat", err)
	}
	return OK(strings.TrimSuffix(out, "\n"))
}

func runEcho(_ context.Context, inv *Invocation) Result {
	return OK(strings.Join(inv.Args, " "))
}

func runTouch(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("touch", "missing file operand")
	}
	for _, p := range inv.Args {
		if _, err := inv.FS().Touch(inv.Actor(), p); err != nil {
			return Fail("touch", err)
		}
	}
	return OK("")
}

func runMkdir(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("mkdir", "missing operand")
	}
	parents := inv.Flags.Any("p", "parents")
	for _, p := range inv.Args {
		if _, err := inv.FS().CreateDir(inv.Actor(), p, parents); err != nil {
			return Fail("mkdir", err)
		}
	}
	return OK("")
}

func runRm(_ context.Context, inv *Invocation) Result {
	force := inv.Flags.Any("f", "force")
	recursive := inv.Flags.Any("r", "R", "recursive")
	if len(inv.Args) == 0 {
		if force {
			return OK("")
		}
		return Failf("rm", "missing operand")
	}
	for _, p := range inv.Args {
		err := inv.FS().Remove(inv.Actor(), p, recursive)
		if err != nil && !(force && errors.Is(err, vfs.ErrNotFound)) {
			return Fail("rm", err)
		}
	}
	return OK("")
}

func runRmdir(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("rmdir", "missing operand")
	}
	for _, p := range inv.Args {
		if err := inv.FS().RemoveDir(inv.Actor(), p); err != nil {
			return Fail("rmdir", err)
		}
	}
	return OK("")
}

func runMv(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) < 2 {
		return Failf("mv", "missing destination file operand")
	}
	dst := inv.Args[len(inv.Args)-1]
	srcs := inv.Args[:len(inv.Args)-1]
	if len(srcs) > 1 {
		if n, err := inv.FS().Stat(inv.Actor(), dst); err != nil || !n.IsDir() {
			return Failf("mv", "target '%s' is not a directory", dst)
		}
	}
	for _, src := range srcs {
		if err := inv.FS().Move(inv.Actor(), src, dst); err != nil {
			return Fail("mv", err)
		}
	}
	return OK("")
}

func runCp(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) < 2 {
		return Failf("cp", "missing destination file operand")
	}
	recursive := inv.Flags.Any("r", "R", "recursive")
	dst := inv.Args[len(inv.Args)-1]
	for _, src := range inv.Args[:len(inv.Args)-1] {
		if err := inv.FS().Copy(inv.Actor(), src, dst, recursive); err != nil {
			return Fail("cp", err)
		}
	}
	return OK("")
}

func runChmod(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) < 2 {
		return Failf("chmod", "missing operand")
	}
	mode := inv.Args[0]
	targets, err := expand(inv, inv.Args[1:])
	if err != nil {
		return Fail("chmod", err)
	}
	for _, p := range targets {
		if _, err := inv.FS().Chmod(inv.Actor(), p, mode); err != nil {
			return Fail("chmod", err)
		}
	}
	return OK("")
}

func runChown(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) < 2 {
		return Failf("chown", "missing operand")
	}
	who := inv.Args[0]
	targets, err := expand(inv, inv.Args[1:])
	if err != nil {
		return Fail("chown", err)
	}
	for _, p := range targets {
		if _, err := inv.FS().Chown(inv.Actor(), p, who); err != nil {
			return Fail("chown", err)
		}
	}
	return OK("")
}

// expand lists the paths a -R attribute change touches, children before
// their parents. A directory is therefore changed last, after nothing below
// it still needs the search access a new mode may revoke.
func expand(inv *Invocation, paths []string) ([]string, error) {
	if !inv.Flags.Any("R", "recursive") {
		return paths, nil
	}
	var out []string
	for _, p := range paths {
		err := inv.FS().Walk(inv.Actor(), p, func(path string, _ vfs.Node) error {
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Reverse(out)
	return out, nil
}

func runNano(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("nano", "missing file operand")
	}
	p := inv.Args[0]
	abs := inv.FS().Resolve(inv.Actor(), p)
	n, err := inv.FS().Stat(inv.Actor(), p)
	switch {
	case err == nil && n.IsDir():
		return Failf("nano", "%s: Is a directory", p)
	case err == nil:
		content, err := inv.FS().ReadFile(inv.Actor(), p)
		if err != nil {
			return Fail("nano", err)
		}
		return Result{Editor: &EditorAction{Action: "open", Path: abs, Content: content}}
	case errors.Is(err, vfs.ErrNotFound):
		if _, err := vfs.NormalizeWritePath(p); err != nil {
			return Fail("nano", err)
		}
		return Result{Editor: &EditorAction{Action: "open", Path: abs}}
	default:
		return Fail("nano", err)
	}
}

var fileDescriptions = map[string]string{
	"application/zip":    "Zip archive data",
	"application/pdf":    "PDF document",
	"application/gzip":   "gzip compressed data",
	"application/json":   "JSON text data",
	"text/x-shellscript": "shell script, ASCII text executable",
	"image/png":          "PNG image data",
}

func runFile(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		return Failf("file", "missing file operand")
	}
	var lines []string
	for _, p := range inv.Args {
		n, err := inv.FS().Stat(inv.Actor(), p)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: cannot open (%s)", p, reason(err)))
			continue
		}
		if n.IsDir() {
			lines = append(lines, p+": directory")
			continue
		}
		content, err := inv.FS().ReadFile(inv.Actor(), p)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: cannot open (%s)", p, reason(err)))
			continue
		}
		lines = append(lines, p+": "+describe(content))
	}
	return OK(strings.Join(lines, "\n"))
}

func describe(content string) string {
	if content == "" {
		return "empty"
	}
	mt := mimetype.Detect([]byte(content))
	for m := mt; m != nil; m = m.Parent() {
		mime, _, _ := strings.Cut(m.String(), ";")
		if desc, ok := fileDescriptions[mime]; ok {
			return desc + " (" + mime + ")"
		}
	}
	mime, _, _ := strings.Cut(mt.String(), ";")
	if strings.HasPrefix(mime, "text/") {
		return "ASCII text (" + mime + ")"
	}
	return "data (" + mime + ")"
}
