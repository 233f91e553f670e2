// Package tui is the terminal front end of the game.
//
// Model is a bubbletea program with a scrollback, a prompt with tab
// completion and history recall, and the nano editor. Exec is the
// non-interactive counterpart that reads command lines from a reader and
// prints plain text.
package tui
