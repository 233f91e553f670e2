// Package vfs implements the in-memory filesystem of the simulated machine.
//
// Nodes live in an arena keyed by id.NodeID; each record knows its parent
// id and its children by name. Every operation takes an Actor (subject and
// working directory) explicitly, checks access before mutating and leaves
// the tree untouched on failure.
//
// Components:
//   - FileSystem: node arena plus the identity.Directory that owns it
//   - Session: active user and working directory, snapshot and restore
//   - Seed: YAML or TOML description of a starting machine
//   - Error: coded failures (not found, permission denied, ...)
//
// Access Rules:
//   - Traversal needs execute on every ancestor directory
//   - Listing needs read and execute on the directory
//   - Creating, removing or renaming needs write and execute on the parent
//   - chmod and chown need ownership or root ("Operation not permitted")
//
// Example Usage:
//
//	seed, _ := vfs.DefaultSeed()
//	fs, _ := vfs.FromSeed(seed)
//	sess, _ := vfs.NewSession(fs, seed.DefaultUser)
//	a := sess.Actor()
//	content, err := fs.ReadFile(a, "documents/notes.txt")
package vfs
