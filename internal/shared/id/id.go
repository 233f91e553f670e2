// Package id provides ULID-based identifiers for filesystem nodes and shell
// sessions.
//
// ULIDs are lexicographically sortable by creation time, so node ids double
// as a creation order and session ids sort by start time in logs.
//
// Prefixes:
//   - node_*: filesystem tree nodes
//   - sess_*: shell sessions hosted by the server
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Type-Safe ID Wrappers
// ============================================================================

// NodeID identifies a node in the in-memory tree
type NodeID string

// SessionID identifies a hosted shell session
type SessionID string

const (
	NodePrefix    = "node"
	SessionPrefix = "sess"
)

// ============================================================================
// ULID Generator
// ============================================================================

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with monotonic entropy so ids minted in
// the same millisecond still sort in creation order
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy, now: time.Now}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// ============================================================================
// Typed ID Generators
// ============================================================================

// NewNodeID generates a new node ID
func NewNodeID() NodeID {
	return NodeID(Default().GenerateWithPrefix(NodePrefix))
}

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

func (id NodeID) String() string    { return string(id) }
func (id SessionID) String() string { return string(id) }

// ============================================================================
// Validation
// ============================================================================

// IsValid checks if s is a valid ULID, with or without a type prefix
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse parses a ULID string, stripping a known prefix
func Parse(s string) (ulid.ULID, error) {
	if i := strings.IndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	return ulid.Parse(s)
}

// Timestamp extracts the creation time from an id
func Timestamp(s string) (time.Time, error) {
	parsed, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
