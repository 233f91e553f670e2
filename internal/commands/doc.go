// Package commands implements the shell builtins of the training terminal.
//
// Each builtin is a Command with a Handler. The Registry dispatches an
// Invocation to it and answers help, man, whatis and apropos queries from
// the same catalog.
//
// Handlers never touch the tree directly; they go through the session's
// FileSystem with the session's Actor, so every permission rule applies to
// them exactly as it does to any other caller. Output is plain text except
// for ls and grep, which return escaped display markup.
package commands
