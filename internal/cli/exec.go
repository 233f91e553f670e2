package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
	"github.com/GriffinCanCode/termquest/internal/tui"
)

// ErrCommandsFailed is returned by exec when at least one line failed.
var ErrCommandsFailed = errors.New("one or more commands failed")

var execCmd = &cobra.Command{
	Use:   "exec [command line...]",
	Short: "Run command lines without a terminal",
	Long: `Exec runs each argument as one command line on the simulated machine and
prints plain output. With no arguments the lines are read from stdin.

Exec starts from a fresh machine. With --save-dir the slot is resumed first
and saved afterwards.

Examples:
  termquest exec "cd documents" "ls -l" "grep -n learn todo.txt"
  printf 'whoami\nid\n' | termquest exec`,
	RunE: runExec,
}

func init() {
	addGameFlags(execCmd)
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if gameFlags.saveDir == "" {
		gameFlags.noSave = true
	}

	cfg := config.LoadOrDefault()
	logger, err := gameLogger(cfg, gameFlags.logFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	g, err := openGame(ctx, cfg, logger.Component("exec"))
	if err != nil {
		return err
	}
	defer g.Close()

	input := cmd.InOrStdin()
	if len(args) > 0 {
		input = strings.NewReader(strings.Join(args, "\n"))
	}
	failed, err := tui.Exec(ctx, g.entry.Shell, input, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := g.Save(ctx); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", g.slot, err)
	}
	if failed > 0 {
		return ErrCommandsFailed
	}
	return nil
}
