package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/session"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
	"github.com/GriffinCanCode/termquest/internal/shell"
)

// MaxMessageSize bounds one inbound message.
const MaxMessageSize = 16 * 1024

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is an inbound terminal message.
type Message struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Input   string `json:"input,omitempty"`
}

// ResultMessage carries a command result.
type ResultMessage struct {
	Type string `json:"type"`
	commands.Result
	Prompt string `json:"prompt"`
}

// CompletionMessage carries a completion.
type CompletionMessage struct {
	Type string `json:"type"`
	shell.Completion
}

// Metrics is the subset of monitoring the handler reports to.
type Metrics interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

// Handler manages WebSocket terminals
type Handler struct {
	manager *session.Manager
	metrics Metrics
	logger  *zap.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(manager *session.Manager, metrics Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{manager: manager, metrics: metrics, logger: logger}
}

// HandleConnection upgrades the request and serves the terminal until the
// client goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	entry, ok := h.resolve(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	ctx := c.Request.Context()
	log := h.logger.With(zap.String("session_id", entry.ID.String()))
	log.Info("terminal connected")

	h.send(conn, "system", map[string]any{
		"type":    "system",
		"message": "Connected to TermQuest",
		"session": entry.ID.String(),
		"prompt":  entry.Shell.Prompt(),
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}
		entry.Touch()

		switch msg.Type {
		case "exec":
			res := entry.Shell.Execute(ctx, msg.Command)
			h.send(conn, "result", ResultMessage{Type: "result", Result: res, Prompt: entry.Shell.Prompt()})
		case "complete":
			h.send(conn, "completion", CompletionMessage{Type: "completion", Completion: entry.Shell.Complete(msg.Input)})
		case "ping":
			h.send(conn, "pong", map[string]any{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
	log.Info("terminal disconnected")
}

// resolve finds the session named by ?session= or creates one.
func (h *Handler) resolve(c *gin.Context) (*session.Entry, bool) {
	if raw := c.Query("session"); raw != "" {
		entry, ok := h.manager.Get(id.SessionID(raw))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		}
		return entry, ok
	}
	entry, err := h.manager.Create()
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return nil, false
	}
	return entry, true
}

func (h *Handler) send(conn *websocket.Conn, msgType string, data any) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
	if err := conn.WriteJSON(data); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) {
	h.send(conn, "error", map[string]any{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
