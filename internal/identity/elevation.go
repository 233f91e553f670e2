package identity

import (
	"fmt"
	"path"
	"strings"
)

// refusedCommands are never run under sudo.
var refusedCommands = map[string]bool{
	"dd":       true,
	"halt":     true,
	"poweroff": true,
	"reboot":   true,
	"shutdown": true,
}

// CheckElevation returns ErrBlocked when argv matches the elevation
// denylist. Relative targets are resolved against cwd before being
// compared to the root directory. The check never depends on who asks.
func CheckElevation(argv []string, cwd string) error {
	if len(argv) == 0 {
		return nil
	}
	cmd := argv[0]
	if refusedCommands[cmd] || strings.HasPrefix(cmd, "mkfs") {
		return fmt.Errorf("%w: %s", ErrBlocked, cmd)
	}

	recursive := false
	var targets []string
	for _, arg := range argv[1:] {
		switch {
		case arg == "--recursive":
			recursive = true
		case strings.HasPrefix(arg, "--"):
		case len(arg) > 1 && arg[0] == '-' && arg[1] != '/':
			if strings.ContainsAny(arg[1:], "rR") {
				recursive = true
			}
		default:
			targets = append(targets, arg)
		}
	}

	switch cmd {
	case "rm", "chmod", "chown", "chgrp":
		if recursive && hasRootTarget(targets, cwd) {
			return fmt.Errorf("%w: %s", ErrBlocked, strings.Join(argv, " "))
		}
	case "userdel":
		for _, t := range targets {
			if t == RootUser {
				return fmt.Errorf("%w: %s", ErrBlocked, strings.Join(argv, " "))
			}
		}
	}
	return nil
}

// hasRootTarget reports whether any target names "/" or every entry
// directly under it, once resolved against cwd and cleaned.
func hasRootTarget(targets []string, cwd string) bool {
	if !strings.HasPrefix(cwd, "/") {
		cwd = "/" + cwd
	}
	for _, t := range targets {
		if t == "" {
			continue
		}
		abs := t
		if !strings.HasPrefix(abs, "/") {
			abs = path.Join(cwd, abs)
		}
		abs = path.Clean(abs)
		if abs == "/" {
			return true
		}
		if dir, base := path.Split(abs); base == "*" && path.Clean(dir) == "/" {
			return true
		}
	}
	return false
}
