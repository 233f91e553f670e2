package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/shell/parser"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// reason strips the path from a tree error.
func reason(err error) string {
	var e *vfs.Error
	if errors.As(err, &e) {
		return e.Reason()
	}
	return err.Error()
}

// splitLines splits text into lines without a phantom trailing one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// lineCount reads the line count of head and tail: "-n N", "-nN", "-N"
// or the default. The consumed arguments are removed from args.
func lineCount(inv *Invocation, def int) (int, []string, error) {
	args := inv.Args
	n := def
	attached, found, err := attachedCount(inv.Raw)
	switch {
	case err != nil:
		return 0, nil, err
	case found:
		n = attached
	case inv.Flags.Has("n"):
		if len(args) == 0 {
			return 0, nil, errors.New("option requires an argument -- 'n'")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return 0, nil, errors.New("invalid number of lines: '" + args[0] + "'")
		}
		n, args = v, args[1:]
	case len(args) > 0 && strings.HasPrefix(args[0], "-"):
		v, err := strconv.Atoi(args[0][1:])
		if err != nil {
			return 0, nil, errors.New("invalid number of lines: '" + args[0] + "'")
		}
		n, args = v, args[1:]
	}
	return n, args, nil
}

// attachedCount finds an "-nN" token in the raw command. The parser splits
// such a token into single-letter flags, so the digits are read back here.
func attachedCount(raw string) (int, bool, error) {
	for _, tok := range parser.Tokenize(raw) {
		if len(tok) <= 2 || !strings.HasPrefix(tok, "-n") {
			continue
		}
		v, err := strconv.Atoi(tok[2:])
		if err != nil || v < 0 {
			return 0, true, errors.New("invalid number of lines: '" + tok[2:] + "'")
		}
		return v, true, nil
	}
	return 0, false, nil
}

// input returns the file contents named by args, or stdin when there are
// none.
func input(inv *Invocation, args []string) (string, error) {
	if len(args) == 0 {
		if inv.Stdin != nil {
			return *inv.Stdin, nil
		}
		return "", errors.New("missing file operand")
	}
	var b strings.Builder
	for _, p := range args {
		content, err := inv.FS().ReadFile(inv.Actor(), p)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
	}
	return b.String(), nil
}
