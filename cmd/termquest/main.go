package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/GriffinCanCode/termquest/internal/cli"
)

// Exit codes.
const (
	exitError    = 1
	exitCommands = 2
	exitPanic    = 3
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(exitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrCommandsFailed) {
			os.Exit(exitCommands)
		}
		os.Exit(exitError)
	}
}
