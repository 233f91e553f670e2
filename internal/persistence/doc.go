// Package persistence stores saved games.
//
// A save is a versioned envelope {version, savedAt, data} encoded as JSON,
// optionally zstd-compressed, and kept in a key-value Store: in memory for
// tests and single-process play, or in Badger on disk for the server.
// Guard puts a circuit breaker in front of any Store.
//
// Loading is forgiving. Envelopes of the current version yield their data,
// payloads written before envelopes existed are returned unchanged, any
// other shape yields nothing, and an entry that cannot be decoded at all is
// deleted so the next save starts clean.
package persistence
