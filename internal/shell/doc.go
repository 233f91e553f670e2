// Package shell executes command lines against a session.
//
// A Shell owns one vfs.Session and the builtin registry. Execute parses a
// line, runs each pipeline stage with the previous stage's output as its
// standard input, applies a trailing redirect through the filesystem's
// write operations, records history and reports the outcome to the
// optional metrics recorder and command hook. Complete offers command and
// path completion under the same permission rules.
//
// A Shell serializes its own calls, so one session may be driven from
// several goroutines (an HTTP handler and a websocket, say) safely.
package shell
