package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	seed, err := DefaultSeed()
	require.NoError(t, err)
	fs, err := FromSeed(seed, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	sess, err := NewSession(fs, seed.DefaultUser)
	require.NoError(t, err)
	return sess
}

func rootActor(t *testing.T, s *Session) Actor {
	t.Helper()
	a, err := s.FS().ActorFor("root", s.Cwd())
	require.NoError(t, err)
	return a
}
