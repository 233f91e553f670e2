// Package session hosts game sessions for the HTTP and WebSocket front-ends.
//
// Each session is an independent machine: its own filesystem built from the
// seed, its own logged-in user and its own shell history. Sessions share
// nothing, and every shell serializes its own commands.
//
// Components:
//   - Manager: Create, look up and close sessions
//   - Entry: One live shell plus bookkeeping
//   - GameState: What a save slot holds (filesystem snapshot, history and
//     opaque client progress)
//
// Save Process:
//  1. Snapshot the shell's session under its lock
//  2. Wrap snapshot, history and progress in a GameState
//  3. Hand it to persistence.Saves, which adds the versioned envelope
//
// Example Usage:
//
//	manager := session.NewManager(seed, commands.Builtin(), saves)
//	entry, err := manager.Create()
//	res := entry.Shell.Execute(ctx, "ls -l")
//	err = manager.Save(ctx, entry.ID, "slot-1", progress)
package session
