package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Version is the envelope format written by Save.
const Version = 1

// DefaultKey names the save slot when the caller has no other.
const DefaultKey = "linux-game-save"

// legacyKeys mark payloads saved before envelopes were introduced.
var legacyKeys = []string{"completed", "score", "filesystem"}

// Envelope wraps saved data.
type Envelope struct {
	Version int   `json:"version"`
	SavedAt int64 `json:"savedAt"`
	Data    any   `json:"data"`
}

// Saves reads and writes envelopes in a Store.
type Saves struct {
	store  Store
	codec  *Codec
	now    func() time.Time
	logger *zap.Logger
}

// Option configures Saves.
type Option func(*Saves)

// WithClock overrides the savedAt time source.
func WithClock(now func() time.Time) Option {
	return func(s *Saves) { s.now = now }
}

// WithLogger sets the logger used for load failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Saves) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSaves returns Saves over store using codec.
func NewSaves(store Store, codec *Codec, opts ...Option) *Saves {
	s := &Saves{store: store, codec: codec, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes data under key inside a current-version envelope. data must
// encode as a JSON object.
func (s *Saves) Save(ctx context.Context, key string, data any) error {
	blob, err := sonic.Marshal(Envelope{
		Version: Version,
		SavedAt: s.now().UnixMilli(),
		Data:    data,
	})
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	return s.store.Put(ctx, key, s.codec.Encode(blob))
}

// Load returns the saved data under key as JSON, or nil when there is
// nothing usable. Undecodable entries are deleted.
func (s *Saves) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	blob, err := s.codec.Decode(raw)
	var parsed any
	if err == nil {
		err = sonic.Unmarshal(blob, &parsed)
	}
	if err != nil {
		s.logger.Warn("discarding corrupt save", zap.String("key", key), zap.Error(err))
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.logger.Warn("failed to delete corrupt save", zap.String("key", key), zap.Error(derr))
		}
		return nil, nil
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, nil
	}
	if v, ok := obj["version"].(float64); ok && int(v) == Version {
		if data, ok := obj["data"].(map[string]any); ok {
			return sonic.Marshal(data)
		}
	}
	for _, k := range legacyKeys {
		if _, ok := obj[k]; ok {
			return blob, nil
		}
	}
	return nil, nil
}

// Clear deletes the save under key.
func (s *Saves) Clear(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
