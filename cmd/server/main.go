package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/termquest/internal/cli"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override the environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Listen host")
	saveDir := flag.String("save-dir", cfg.Persistence.Dir, "Save store directory (empty keeps saves in memory)")
	seed := flag.String("seed", cfg.Shell.SeedPath, "Machine seed file")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Persistence.Dir = *saveDir
	cfg.Shell.SeedPath = *seed
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		log.Fatalf("termquest server: %v", err)
	}
}
