package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/termquest/internal/api/http"
	"github.com/GriffinCanCode/termquest/internal/api/middleware"
	"github.com/GriffinCanCode/termquest/internal/api/ws"
	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/config"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/termquest/internal/persistence"
	"github.com/GriffinCanCode/termquest/internal/session"
	"github.com/GriffinCanCode/termquest/internal/shell"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// reapInterval is how often idle sessions are collected.
const reapInterval = time.Minute

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	manager    *session.Manager
	store      persistence.Store
	codec      *persistence.Codec
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
	stop       chan struct{}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// New creates a server using logger.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing TermQuest server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("seed", seedName(cfg.Shell.SeedPath)),
	)

	seed, err := LoadSeed(cfg.Shell)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	store, err := OpenSaveStore(cfg.Persistence, logger.Component("persistence"))
	if err != nil {
		return nil, err
	}
	codec, err := persistence.NewCodec(cfg.Persistence.Compress)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create save codec: %w", err)
	}
	saves := persistence.NewSaves(store, codec, persistence.WithLogger(logger.Component("persistence")))
	logger.Info("Save store ready",
		zap.String("dir", cfg.Persistence.Dir),
		zap.Bool("compress", cfg.Persistence.Compress),
	)

	registry := commands.Builtin()
	manager := session.NewManager(seed, registry, saves,
		session.WithLogger(logger.Component("session")),
		session.WithObserver(metrics),
		session.WithSaveKey(cfg.Persistence.Key),
		session.WithShellOptions(
			shell.WithLogger(logger.Component("shell")),
			shell.WithRecorder(metrics),
			shell.WithHistoryLimit(cfg.Shell.HistoryLimit),
			shell.WithMaxPattern(cfg.Shell.MaxPattern),
		),
	)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	tracer := tracing.New("termquest", logger.Component("trace"))

	// Add middleware
	router.Use(middleware.Recovery(logger.Component("http")))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfig{
		Origins:     cfg.CORS.Origins,
		Credentials: cfg.CORS.Credentials,
		MaxAge:      cfg.CORS.MaxAge,
	}))
	router.Use(middleware.BodyLimit(middleware.MaxBodySize))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(manager, registry, metrics, logger.Component("api")).WithSaveHealth(store)
	wsHandler := ws.NewHandler(manager, metrics, logger.Component("ws"))

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Sessions
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions/:id", handlers.GetSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)
	router.POST("/sessions/:id/exec", handlers.Exec)
	router.GET("/sessions/:id/complete", handlers.Complete)
	router.PUT("/sessions/:id/files", handlers.WriteFile)
	router.POST("/sessions/:id/save", handlers.Save)
	router.POST("/sessions/:id/load", handlers.Load)
	router.DELETE("/saves", handlers.ClearSave)

	// Command catalogue
	router.GET("/commands", handlers.ListCommands)
	router.GET("/commands/discover", handlers.DiscoverCommands)

	// Front-end logs
	router.POST("/logs", handlers.StreamLogs)

	// WebSocket
	router.GET("/terminal", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	router.GET("/metrics/json", handlers.Stats)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		manager: manager,
		store:   store,
		codec:   codec,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
		stop:    make(chan struct{}),
	}, nil
}

// LoadSeed loads the configured seed and checks that its default user can
// log in. An empty SeedPath selects the embedded machine.
func LoadSeed(cfg config.ShellConfig) (*vfs.Seed, error) {
	var (
		seed *vfs.Seed
		err  error
	)
	if cfg.SeedPath == "" {
		seed, err = vfs.DefaultSeed()
	} else {
		seed, err = vfs.LoadSeedFile(cfg.SeedPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}
	if cfg.DefaultUser != "" {
		seed.DefaultUser = cfg.DefaultUser
	}

	fs, err := vfs.FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	if _, err := vfs.NewSession(fs, seed.DefaultUser); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return seed, nil
}

// OpenSaveStore opens the Badger save store behind a circuit breaker.
func OpenSaveStore(cfg config.PersistenceConfig, logger *zap.Logger) (*persistence.GuardedStore, error) {
	store, err := persistence.OpenBadger(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open save store: %w", err)
	}
	breaker := resilience.New("saves", resilience.Settings{
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= uint32(max(cfg.BreakerFailures, 1))
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return persistence.Guard(store, breaker), nil
}

func seedName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Manager returns the session manager.
func (s *Server) Manager() *session.Manager {
	return s.manager
}

// Logger returns the server logger.
func (s *Server) Logger() *logging.Logger {
	return s.logger
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	go s.reap()

	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) reap() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.manager.Reap(s.config.Shell.SessionTTL)
		case <-s.stop:
			return
		}
	}
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	close(s.stop)

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	s.tracer.Close()
	s.codec.Close()
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close save store: %w", err))
	}

	_ = s.logger.Sync()
	return errors.Join(errs...)
}
