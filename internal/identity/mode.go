package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode holds the nine permission bits of a node.
type Mode uint16

const (
	ModeRead  Mode = 4
	ModeWrite Mode = 2
	ModeExec  Mode = 1

	ownerShift = 6
	groupShift = 3
	otherShift = 0

	// ModeMask covers every permission bit.
	ModeMask Mode = 0o777
)

// Default modes for newly created nodes.
const (
	DefaultFileMode Mode = 0o644
	DefaultDirMode  Mode = 0o755
)

// Owner returns the owner triad.
func (m Mode) Owner() Mode { return (m >> ownerShift) & 7 }

// Group returns the group triad.
func (m Mode) Group() Mode { return (m >> groupShift) & 7 }

// Other returns the other triad.
func (m Mode) Other() Mode { return m & 7 }

// String renders the mode as "rwxr-xr-x".
func (m Mode) String() string {
	var sb strings.Builder
	sb.Grow(9)
	for _, t := range []Mode{m.Owner(), m.Group(), m.Other()} {
		sb.WriteByte(bit(t, ModeRead, 'r'))
		sb.WriteByte(bit(t, ModeWrite, 'w'))
		sb.WriteByte(bit(t, ModeExec, 'x'))
	}
	return sb.String()
}

// Octal renders the mode as three octal digits.
func (m Mode) Octal() string {
	return fmt.Sprintf("%03o", uint16(m&ModeMask))
}

func bit(t, b Mode, c byte) byte {
	if t&b != 0 {
		return c
	}
	return '-'
}

// ParseModeString parses the nine-character "rwxr-x---" form.
func ParseModeString(s string) (Mode, error) {
	if len(s) != 9 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	const letters = "rwx"
	var m Mode
	for i := 0; i < 9; i++ {
		c := s[i]
		switch c {
		case '-':
		case letters[i%3]:
			m |= 1 << (8 - i)
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
		}
	}
	return m, nil
}

// ParseMode applies a chmod expression to current and returns the new mode.
// The expression is either octal ("750", "0644", "44") or a symbolic clause list
// ("u+x,g-w,o="). Any malformed clause rejects the whole expression.
func ParseMode(expr string, current Mode) (Mode, error) {
	if expr == "" {
		return current, fmt.Errorf("%w: ''", ErrInvalidMode)
	}
	if isOctal(expr) {
		v, err := strconv.ParseUint(expr, 8, 16)
		if err != nil {
			return current, fmt.Errorf("%w: '%s'", ErrInvalidMode, expr)
		}
		return Mode(v) & ModeMask, nil
	}

	next := current & ModeMask
	for _, clause := range strings.Split(expr, ",") {
		applied, ok := applyClause(clause, next)
		if !ok {
			return current, fmt.Errorf("%w: '%s'", ErrInvalidMode, expr)
		}
		next = applied
	}
	return next, nil
}

// isOctal accepts one to three octal digits, read as left-zero-padded,
// plus an optional leading zero on the full three.
func isOctal(expr string) bool {
	if len(expr) == 4 && expr[0] == '0' {
		expr = expr[1:]
	}
	if len(expr) < 1 || len(expr) > 3 {
		return false
	}
	for i := 0; i < len(expr); i++ {
		if expr[i] < '0' || expr[i] > '7' {
			return false
		}
	}
	return true
}

// applyClause applies one <who><op><perm>* clause.
func applyClause(clause string, m Mode) (Mode, bool) {
	i := 0
	var shifts []uint
	for i < len(clause) && strings.IndexByte("ugoa", clause[i]) >= 0 {
		switch clause[i] {
		case 'u':
			shifts = append(shifts, ownerShift)
		case 'g':
			shifts = append(shifts, groupShift)
		case 'o':
			shifts = append(shifts, otherShift)
		case 'a':
			shifts = append(shifts, ownerShift, groupShift, otherShift)
		}
		i++
	}
	if len(shifts) == 0 {
		shifts = []uint{ownerShift, groupShift, otherShift}
	}
	if i >= len(clause) || strings.IndexByte("+-=", clause[i]) < 0 {
		return m, false
	}
	op := clause[i]
	i++

	var perm Mode
	for ; i < len(clause); i++ {
		switch clause[i] {
		case 'r':
			perm |= ModeRead
		case 'w':
			perm |= ModeWrite
		case 'x':
			perm |= ModeExec
		default:
			return m, false
		}
	}

	for _, s := range shifts {
		mask := Mode(7) << s
		bits := perm << s
		switch op {
		case '+':
			m |= bits
		case '-':
			m &^= bits
		case '=':
			m = (m &^ mask) | bits
		}
	}
	return m, true
}
