package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "termquest",
	Short: "Learn the Linux command line by playing",
	Long: `TermQuest is a terminal training game played on a simulated machine.

The machine lives in memory: a POSIX-like filesystem with users, groups and
permission bits, and a shell that understands pipes, redirects and sudo.
Nothing you type touches the real computer.

Commands:
  play     open the interactive terminal (default)
  exec     run command lines without a terminal
  serve    start the HTTP and WebSocket service for the browser game

Configuration is read from the environment (SERVER_*, SHELL_*, PERSIST_*).
Flags override the environment.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	addGameFlags(rootCmd)
}
