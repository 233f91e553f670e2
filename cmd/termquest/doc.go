// Command termquest is the TermQuest game.
//
// Run it with no arguments to open the interactive terminal on the saved
// machine. "termquest exec" runs command lines from arguments or stdin,
// and "termquest serve" starts the backend for the browser game.
//
// Exit codes:
//   - 0: success
//   - 1: error (bad flags, unreadable seed, save store failure)
//   - 2: exec ran but at least one command line failed
//   - 3: panic
package main
