package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termquest/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/termquest/internal/session"
)

// MaxCommandLength bounds a single command line.
const MaxCommandLength = 16 * 1024

// SaveHealth reports the save store's circuit breaker.
type SaveHealth interface {
	State() resilience.State
}

// Handlers contains all HTTP handlers
type Handlers struct {
	manager  *session.Manager
	registry *commands.Registry
	metrics  *monitoring.Metrics
	saves    SaveHealth
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(manager *session.Manager, registry *commands.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		manager:  manager,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "TermQuest",
		"version": "1.0.0",
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":   "healthy",
		"sessions": h.manager.Count(),
		"commands": h.registry.Stats(),
	}
	if h.saves != nil {
		state := h.saves.State()
		resp["saves"] = state.String()
		if state != resilience.StateClosed {
			resp["status"] = "degraded"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// WithSaveHealth makes Health report the save store.
func (h *Handlers) WithSaveHealth(s SaveHealth) *Handlers {
	h.saves = s
	return h
}

// Stats returns the JSON metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Stats())
}

// CommandInfo describes a builtin for the help panel.
type CommandInfo struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Usage    string `json:"usage"`
	Category string `json:"category"`
}

func commandInfos(cmds []commands.Command) []CommandInfo {
	out := make([]CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, CommandInfo{
			Name:     c.Name,
			Summary:  c.Summary,
			Usage:    c.Usage,
			Category: string(c.Category),
		})
	}
	return out
}

// ListCommands lists builtins, optionally filtered by ?category=
func (h *Handlers) ListCommands(c *gin.Context) {
	var category *commands.Category
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat := commands.Category(raw)
		category = &cat
	}
	cmds := h.registry.List(category)
	c.JSON(http.StatusOK, gin.H{
		"commands": commandInfos(cmds),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverCommands searches builtins by ?q=
func (h *Handlers) DiscoverCommands(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"commands": commandInfos(h.registry.Discover(query, 10)),
	})
}
