package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/session"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
)

// SessionInfo describes a live session.
type SessionInfo struct {
	ID      string   `json:"id"`
	User    string   `json:"user"`
	Cwd     string   `json:"cwd"`
	Prompt  string   `json:"prompt"`
	History []string `json:"history"`
}

// ExecRequest is a command line to run.
type ExecRequest struct {
	Command string `json:"command"`
}

// ExecResponse is the command result plus the prompt to show next.
type ExecResponse struct {
	commands.Result
	Prompt string `json:"prompt"`
}

// SaveRequest names a save slot and carries client progress.
type SaveRequest struct {
	Slot     string          `json:"slot"`
	Progress json.RawMessage `json:"progress,omitempty"`
}

// WriteRequest carries the editor buffer nano saves.
type WriteRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// LoadResponse is what a slot held.
type LoadResponse struct {
	Found    bool            `json:"found"`
	Progress json.RawMessage `json:"progress,omitempty"`
	Session  *SessionInfo    `json:"session,omitempty"`
}

func describe(e *session.Entry) SessionInfo {
	user, cwd := e.Shell.Location()
	return SessionInfo{
		ID:      e.ID.String(),
		User:    user,
		Cwd:     cwd,
		Prompt:  e.Shell.Prompt(),
		History: e.Shell.History(),
	}
}

// entry resolves :id or writes a 404.
func (h *Handlers) entry(c *gin.Context) (*session.Entry, bool) {
	e, ok := h.manager.Get(id.SessionID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	e.Touch()
	return e, true
}

// CreateSession starts a new machine
func (h *Handlers) CreateSession(c *gin.Context) {
	e, err := h.manager.Create()
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, describe(e))
}

// GetSession describes a session
func (h *Handlers) GetSession(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, describe(e))
}

// DeleteSession closes a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	if !h.manager.Close(id.SessionID(c.Param("id"))) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Exec runs one command line
func (h *Handlers) Exec(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	var req ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Command) > MaxCommandLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command too long"})
		return
	}

	res := e.Shell.Execute(c.Request.Context(), req.Command)
	c.JSON(http.StatusOK, ExecResponse{Result: res, Prompt: e.Shell.Prompt()})
}

// Complete answers a tab press for ?input=
func (h *Handlers) Complete(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	input := c.Query("input")
	if len(input) > MaxCommandLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input too long"})
		return
	}
	out := e.Shell.Complete(input)
	if out.Options == nil {
		out.Options = []string{}
	}
	c.JSON(http.StatusOK, out)
}

// WriteFile saves the nano buffer as the session's user
func (h *Handlers) WriteFile(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := e.Shell.SaveFile(req.Path, req.Content); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nano: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": req.Path})
}

// Save stores the session in a slot
func (h *Handlers) Save(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	var req SaveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	if err := h.manager.Save(c.Request.Context(), e.ID, req.Slot, req.Progress); err != nil {
		h.logger.Error("failed to save session", zap.String("session_id", e.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slotName(req.Slot)})
}

// Load restores a slot into the session
func (h *Handlers) Load(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	slot := c.Query("slot")
	progress, found, err := h.manager.Load(c.Request.Context(), e.ID, slot)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("failed to load session", zap.String("session_id", e.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	resp := LoadResponse{Found: found, Progress: progress}
	if found {
		info := describe(e)
		resp.Session = &info
	}
	c.JSON(http.StatusOK, resp)
}

// ClearSave deletes a slot
func (h *Handlers) ClearSave(c *gin.Context) {
	slot := c.Query("slot")
	if err := h.manager.Clear(c.Request.Context(), slot); err != nil {
		h.logger.Error("failed to clear save", zap.String("slot", slot), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear save"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slotName(slot)})
}

func slotName(slot string) string {
	if slot == "" {
		return session.DefaultSlot
	}
	return slot
}
