package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/server"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 15 * time.Second

var serveFlags struct {
	host    string
	port    string
	seed    string
	saveDir string
	dev     bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket service",
	Long: `Serve runs the browser game's backend.

Each browser tab gets its own machine. Sessions idle for longer than
SHELL_SESSION_TTL are dropped. Saves go to PERSIST_DIR, or stay in memory
when it is unset.

Examples:
  termquest serve --port 8000 --save-dir /var/lib/termquest
  LOG_DEV=true termquest serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.host, "host", "", "listen host (default: $HOST or 0.0.0.0)")
	f.StringVar(&serveFlags.port, "port", "", "listen port (default: $PORT or 8000)")
	f.StringVar(&serveFlags.seed, "seed", "", "YAML or TOML machine seed")
	f.StringVar(&serveFlags.saveDir, "save-dir", "", "directory holding save slots")
	f.BoolVar(&serveFlags.dev, "dev", false, "development logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadOrDefault()
	applyServeFlags(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, cfg)
}

func applyServeFlags(cfg *config.Config) {
	if serveFlags.host != "" {
		cfg.Server.Host = serveFlags.host
	}
	if serveFlags.port != "" {
		cfg.Server.Port = serveFlags.port
	}
	if serveFlags.seed != "" {
		cfg.Shell.SeedPath = serveFlags.seed
	}
	if serveFlags.saveDir != "" {
		cfg.Persistence.Dir = serveFlags.saveDir
	}
	if serveFlags.dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
}

// Serve runs the service until ctx is done, then shuts it down.
func Serve(ctx context.Context, cfg *config.Config) error {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		srv.Logger().Error("Error during shutdown", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("server error: %w", runErr)
	}
	return nil
}
