package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
	"github.com/GriffinCanCode/termquest/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive terminal",
	Long: `Play opens the simulated machine in a full-screen terminal.

The machine is resumed from the save slot and written back when you leave
with "exit", ctrl+d or ctrl+c. Without a terminal (piped input, CI, NO_COLOR)
play reads command lines from stdin instead, like exec.

Examples:
  # Resume the default slot
  termquest play

  # Practice on a throwaway machine
  termquest play --no-save

  # Play a custom machine in its own slot
  termquest play --seed ./levels/permissions.yaml --slot permissions`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadOrDefault()
	logger, err := gameLogger(cfg, gameFlags.logFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	g, err := openGame(ctx, cfg, logger.Component("game"))
	if err != nil {
		return err
	}
	defer g.Close()

	if tui.IsInteractive() {
		err = tui.Run(ctx, g.entry.Shell)
	} else {
		_, err = tui.Exec(ctx, g.entry.Shell, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	// The machine is saved even when the terminal stopped on an error or a
	// signal, so the player loses nothing they typed.
	if saveErr := g.Save(context.WithoutCancel(ctx)); saveErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "termquest: failed to save slot %q: %v\n", g.slot, saveErr)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
