package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termquest/internal/commands"
	"github.com/GriffinCanCode/termquest/internal/persistence"
	"github.com/GriffinCanCode/termquest/internal/shared/id"
	"github.com/GriffinCanCode/termquest/internal/shell"
	"github.com/GriffinCanCode/termquest/internal/vfs"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// DefaultSlot names the save slot used when the client gives none.
const DefaultSlot = "default"

// Observer is told about session lifecycle events.
type Observer interface {
	SetSessionsActive(count int)
	IncSessionsCreated()
	IncSessionsSaved()
	IncSessionsRestored()
	RecordStoreOp(operation, status string, d time.Duration)
}

// GameState is the payload stored in a save slot.
type GameState struct {
	Filesystem json.RawMessage `json:"filesystem"`
	History    []string        `json:"history,omitempty"`
	Progress   json.RawMessage `json:"progress,omitempty"`
}

// Entry is one live session.
type Entry struct {
	ID        id.SessionID
	Shell     *shell.Shell
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

// Touch marks the entry as used now.
func (e *Entry) Touch() {
	e.mu.Lock()
	e.lastUsed = time.Now()
	e.mu.Unlock()
}

// LastUsed returns when the entry was last used.
func (e *Entry) LastUsed() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// WithShellOptions sets options applied to every new shell.
func WithShellOptions(opts ...shell.Option) Option {
	return func(m *Manager) { m.shellOpts = append(m.shellOpts, opts...) }
}

// WithSaveKey sets the prefix of save slot keys.
func WithSaveKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.saveKey = key
		}
	}
}

// WithFSOptions sets options applied to every new filesystem.
func WithFSOptions(opts ...vfs.Option) Option {
	return func(m *Manager) { m.fsOpts = append(m.fsOpts, opts...) }
}

// Manager owns every live session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*Entry

	seed      *vfs.Seed
	registry  *commands.Registry
	saves     *persistence.Saves
	saveKey   string
	fsOpts    []vfs.Option
	shellOpts []shell.Option
	observer  Observer
	logger    *zap.Logger
}

// NewManager creates a manager that builds sessions from seed. saves may be
// nil, in which case Save and Load fail.
func NewManager(seed *vfs.Seed, registry *commands.Registry, saves *persistence.Saves, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[id.SessionID]*Entry),
		seed:     seed,
		registry: registry,
		saves:    saves,
		saveKey:  persistence.DefaultKey,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds a fresh machine from the seed and logs in its default user.
func (m *Manager) Create() (*Entry, error) {
	fs, err := vfs.FromSeed(m.seed, m.fsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build filesystem: %w", err)
	}
	sess, err := vfs.NewSession(fs, m.seed.DefaultUser)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	now := time.Now()
	entry := &Entry{
		ID:        id.NewSessionID(),
		Shell:     shell.New(sess, m.registry, m.shellOpts...),
		CreatedAt: now,
		lastUsed:  now,
	}

	m.mu.Lock()
	m.sessions[entry.ID] = entry
	count := len(m.sessions)
	m.mu.Unlock()

	if m.observer != nil {
		m.observer.IncSessionsCreated()
		m.observer.SetSessionsActive(count)
	}
	m.logger.Info("session created", zap.String("session_id", entry.ID.String()))
	return entry, nil
}

// Get returns a live session.
func (m *Manager) Get(sid id.SessionID) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[sid]
	return e, ok
}

// Close drops a session.
func (m *Manager) Close(sid id.SessionID) bool {
	m.mu.Lock()
	_, ok := m.sessions[sid]
	delete(m.sessions, sid)
	count := len(m.sessions)
	m.mu.Unlock()

	if ok {
		if m.observer != nil {
			m.observer.SetSessionsActive(count)
		}
		m.logger.Info("session closed", zap.String("session_id", sid.String()))
	}
	return ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than ttl and returns how many.
func (m *Manager) Reap(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	m.mu.Lock()
	var reaped int
	for sid, e := range m.sessions {
		if e.LastUsed().Before(cutoff) {
			delete(m.sessions, sid)
			reaped++
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if reaped > 0 {
		if m.observer != nil {
			m.observer.SetSessionsActive(count)
		}
		m.logger.Info("idle sessions reaped", zap.Int("count", reaped))
	}
	return reaped
}

// Save stores the session's machine, history and progress in slot.
func (m *Manager) Save(ctx context.Context, sid id.SessionID, slot string, progress []byte) error {
	if m.saves == nil {
		return errors.New("saving is disabled")
	}
	e, ok := m.Get(sid)
	if !ok {
		return ErrNotFound
	}
	e.Touch()

	fs, err := e.Shell.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot session: %w", err)
	}
	state := GameState{
		Filesystem: fs,
		History:    e.Shell.History(),
		Progress:   json.RawMessage(progress),
	}
	start := time.Now()
	err = m.saves.Save(ctx, m.key(slot), state)
	m.observeStore("save", err, start)
	if err != nil {
		return err
	}

	if m.observer != nil {
		m.observer.IncSessionsSaved()
	}
	m.logger.Info("session saved",
		zap.String("session_id", sid.String()),
		zap.String("slot", slot),
	)
	return nil
}

// Load restores slot into the session and returns the stored progress.
// found is false when the slot is empty or unreadable. A legacy save, or
// one whose filesystem cannot be restored, comes back whole as progress and
// leaves the machine untouched.
func (m *Manager) Load(ctx context.Context, sid id.SessionID, slot string) (progress []byte, found bool, err error) {
	if m.saves == nil {
		return nil, false, errors.New("saving is disabled")
	}
	e, ok := m.Get(sid)
	if !ok {
		return nil, false, ErrNotFound
	}
	e.Touch()

	start := time.Now()
	raw, err := m.saves.Load(ctx, m.key(slot))
	m.observeStore("load", err, start)
	if err != nil || raw == nil {
		return nil, false, err
	}

	var state GameState
	if err := sonic.Unmarshal(raw, &state); err != nil || len(state.Filesystem) == 0 {
		m.logger.Info("legacy save returned as progress", zap.String("slot", slot))
		return raw, true, nil
	}
	if err := e.Shell.Restore(state.Filesystem, state.History); err != nil {
		m.logger.Warn("save holds an unusable filesystem",
			zap.String("slot", slot),
			zap.Error(err),
		)
		return raw, true, nil
	}

	if m.observer != nil {
		m.observer.IncSessionsRestored()
	}
	m.logger.Info("session restored",
		zap.String("session_id", sid.String()),
		zap.String("slot", slot),
	)
	return []byte(state.Progress), true, nil
}

// Clear removes slot.
func (m *Manager) Clear(ctx context.Context, slot string) error {
	if m.saves == nil {
		return errors.New("saving is disabled")
	}
	return m.saves.Clear(ctx, m.key(slot))
}

func (m *Manager) observeStore(op string, err error, start time.Time) {
	if m.observer == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.observer.RecordStoreOp(op, status, time.Since(start))
}

func (m *Manager) key(slot string) string {
	if slot == "" {
		slot = DefaultSlot
	}
	return m.saveKey + ":" + slot
}
