// Package search implements find and grep over the in-memory tree.
//
// Both walk with the caller's permissions: directories the actor cannot
// read and traverse are silently left out, and files it cannot read show
// up as per-file errors in grep results rather than aborting the search.
//
// Find Predicates (AND-composed):
//   - -name PATTERN   glob on the base name, case-sensitive
//   - -iname PATTERN  glob on the base name, case-insensitive
//   - -type f|d       files or directories
//   - -mtime [+-]N    modification age in days
//   - -mmin [+-]N     modification age in minutes
//
// Patterns use doublestar syntax; regular expressions use RE2, which runs
// in linear time for any pattern.
package search
