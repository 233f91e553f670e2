package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/server"
	"github.com/GriffinCanCode/termquest/internal/persistence"
	"github.com/GriffinCanCode/termquest/internal/session"
	"github.com/GriffinCanCode/termquest/internal/shell"
)

// gameFlags are shared by play and exec.
var gameFlags struct {
	seed    string
	user    string
	saveDir string
	slot    string
	noSave  bool
	logFile string
}

func addGameFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&gameFlags.seed, "seed", "", "YAML or TOML machine seed (default: built-in machine)")
	f.StringVar(&gameFlags.user, "user", "", "log in as this user instead of the seed's default")
	f.StringVar(&gameFlags.saveDir, "save-dir", "", "directory holding save slots (default: $PERSIST_DIR or the user config dir)")
	f.StringVar(&gameFlags.slot, "slot", session.DefaultSlot, "save slot to resume and update")
	f.BoolVar(&gameFlags.noSave, "no-save", false, "start a fresh machine and keep nothing")
	f.StringVar(&gameFlags.logFile, "log-file", "", "write logs to this file")
}

func resetGameFlags() {
	gameFlags.seed = ""
	gameFlags.user = ""
	gameFlags.saveDir = ""
	gameFlags.slot = session.DefaultSlot
	gameFlags.noSave = false
	gameFlags.logFile = ""
}

// game is one local machine with its save slot.
type game struct {
	manager  *session.Manager
	entry    *session.Entry
	store    persistence.Store
	codec    *persistence.Codec
	progress []byte
	slot     string
	saving   bool
}

// openGame builds the machine and resumes the slot unless saving is off.
func openGame(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*game, error) {
	shellCfg := cfg.Shell
	if gameFlags.seed != "" {
		shellCfg.SeedPath = gameFlags.seed
	}
	if gameFlags.user != "" {
		shellCfg.DefaultUser = gameFlags.user
	}
	seed, err := server.LoadSeed(shellCfg)
	if err != nil {
		return nil, err
	}

	g := &game{slot: gameFlags.slot, saving: !gameFlags.noSave}
	var saves *persistence.Saves
	if g.saving {
		dir, err := saveDir(cfg.Persistence.Dir)
		if err != nil {
			return nil, err
		}
		persistCfg := cfg.Persistence
		persistCfg.Dir = dir
		if g.store, err = server.OpenSaveStore(persistCfg, logger); err != nil {
			return nil, err
		}
		if g.codec, err = persistence.NewCodec(cfg.Persistence.Compress); err != nil {
			g.store.Close()
			return nil, fmt.Errorf("failed to create save codec: %w", err)
		}
		saves = persistence.NewSaves(g.store, g.codec, persistence.WithLogger(logger))
	}

	g.manager = session.NewManager(seed, commands.Builtin(), saves,
		session.WithLogger(logger),
		session.WithSaveKey(cfg.Persistence.Key),
		session.WithShellOptions(shellOptions(cfg.Shell, logger)...),
	)
	if g.entry, err = g.manager.Create(); err != nil {
		g.Close()
		return nil, err
	}

	if g.saving {
		progress, _, err := g.manager.Load(ctx, g.entry.ID, g.slot)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to load slot %q: %w", g.slot, err)
		}
		g.progress = progress
	}
	return g, nil
}

// Save writes the machine back to its slot, keeping the progress that was
// loaded with it.
func (g *game) Save(ctx context.Context) error {
	if !g.saving {
		return nil
	}
	return g.manager.Save(ctx, g.entry.ID, g.slot, g.progress)
}

func (g *game) Close() error {
	if g.codec != nil {
		g.codec.Close()
	}
	if g.store != nil {
		return g.store.Close()
	}
	return nil
}

// saveDir picks where local saves live.
func saveDir(configured string) (string, error) {
	if gameFlags.saveDir != "" {
		return gameFlags.saveDir, nil
	}
	if configured != "" {
		return configured, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.New("no save directory: pass --save-dir or --no-save")
	}
	return filepath.Join(base, "termquest", "saves"), nil
}

func shellOptions(cfg config.ShellConfig, logger *zap.Logger) []shell.Option {
	return []shell.Option{
		shell.WithLogger(logger),
		shell.WithHistoryLimit(cfg.HistoryLimit),
		shell.WithMaxPattern(cfg.MaxPattern),
	}
}

// gameLogger writes to --log-file when set. The terminal owns stdout and
// stderr while the game runs, so the default is silent.
func gameLogger(cfg *config.Config, path string) (*logging.Logger, error) {
	if path == "" {
		return logging.NewNop(), nil
	}
	return logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{path},
	})
}
