// Package cli implements the termquest command line: the interactive game,
// a scriptable exec mode and the HTTP service.
package cli
