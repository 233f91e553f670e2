package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/resilience"
)

var saveTime = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newSaves(t *testing.T, compress bool) (*Saves, *MemoryStore) {
	t.Helper()
	codec, err := NewCodec(compress)
	require.NoError(t, err)
	t.Cleanup(codec.Close)
	store := NewMemoryStore()
	return NewSaves(store, codec, WithClock(func() time.Time { return saveTime })), store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	saves, store := newSaves(t, false)

	require.NoError(t, saves.Save(ctx, DefaultKey, map[string]any{"score": 42, "level": "basics"}))

	raw, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	var env map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &env))
	assert.EqualValues(t, Version, env["version"])
	assert.EqualValues(t, saveTime.UnixMilli(), env["savedAt"])

	data, err := saves.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":42,"level":"basics"}`, string(data))
}

func TestCompressedSaves(t *testing.T) {
	ctx := context.Background()
	saves, store := newSaves(t, true)

	require.NoError(t, saves.Save(ctx, "k", map[string]any{"completed": []string{"ls-1"}}))
	raw, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, zstdMagic, raw[:4])

	data, err := saves.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":["ls-1"]}`, string(data))

	plain, _ := newSaves(t, false)
	plain.store = store
	data, err = plain.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":["ls-1"]}`, string(data))
}

func TestLoadShapes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"legacy completed", `{"completed":["a"],"score":3}`, `{"completed":["a"],"score":3}`},
		{"legacy filesystem", `{"filesystem":{"name":""}}`, `{"filesystem":{"name":""}}`},
		{"unknown object", `{"foo":1}`, ""},
		{"array", `[1,2]`, ""},
		{"future version", `{"version":2,"savedAt":1,"data":{"x":1}}`, ""},
		{"data not object", `{"version":1,"savedAt":1,"data":5}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saves, store := newSaves(t, false)
			require.NoError(t, store.Put(ctx, "k", []byte(tt.raw)))
			got, err := saves.Load(ctx, "k")
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
			} else {
				assert.JSONEq(t, tt.want, string(got))
			}
			_, err = store.Get(ctx, "k")
			assert.NoError(t, err, "valid JSON is never deleted")
		})
	}
}

func TestLoadClearsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string][]byte{
		"bad json": []byte("{not json"),
		"bad zstd": append(append([]byte{}, zstdMagic...), 0x01, 0x02, 0x03),
	} {
		t.Run(name, func(t *testing.T) {
			saves, store := newSaves(t, false)
			require.NoError(t, store.Put(ctx, "k", raw))

			got, err := saves.Load(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, got)

			_, err = store.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoadMissingAndClear(t *testing.T) {
	ctx := context.Background()
	saves, _ := newSaves(t, false)

	got, err := saves.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, saves.Save(ctx, "k", map[string]any{"score": 1}))
	require.NoError(t, saves.Clear(ctx, "k"))
	got, err = saves.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStores(t *testing.T) {
	badgerStore, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerStore.Close() })

	stores := map[string]Store{
		"memory":  NewMemoryStore(),
		"badger":  badgerStore,
		"guarded": Guard(NewMemoryStore(), resilience.New("test", resilience.Settings{})),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Put(ctx, "a", []byte("one")))
			v, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("one"), v)

			require.NoError(t, store.Put(ctx, "a", []byte("two")))
			v, err = store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("two"), v)

			require.NoError(t, store.Delete(ctx, "a"))
			_, err = store.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)

			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err = store.Get(canceled, "a")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}

	assert.NoError(t, badgerStore.Healthcheck(context.Background()))
}

func TestSavesOverBadger(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadger("")
	require.NoError(t, err)
	defer store.Close()
	codec, err := NewCodec(true)
	require.NoError(t, err)
	defer codec.Close()

	saves := NewSaves(store, codec)
	require.NoError(t, saves.Save(ctx, DefaultKey, map[string]any{"score": 7}))
	data, err := saves.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":7}`, string(data))
}

type brokenStore struct {
	*MemoryStore
	calls int
}

func (b *brokenStore) Put(context.Context, string, []byte) error {
	b.calls++
	return errors.New("disk full")
}

func TestGuardedStoreFailsFast(t *testing.T) {
	ctx := context.Background()
	broken := &brokenStore{MemoryStore: NewMemoryStore()}
	store := Guard(broken, resilience.New("saves", resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 },
		Timeout:     time.Hour,
	}))

	for i := 0; i < 5; i++ {
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, resilience.StateClosed, store.State())

	assert.EqualError(t, store.Put(ctx, "k", nil), "disk full")
	assert.EqualError(t, store.Put(ctx, "k", nil), "disk full")
	assert.Equal(t, resilience.StateOpen, store.State())

	assert.ErrorIs(t, store.Put(ctx, "k", nil), resilience.ErrCircuitOpen)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, 2, broken.calls)
}
