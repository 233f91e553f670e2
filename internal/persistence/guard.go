package persistence

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/resilience"
)

// GuardedStore routes every call through a circuit breaker so a failing
// store fails fast. A missing key is an answer, not a failure.
type GuardedStore struct {
	store   Store
	breaker *resilience.Breaker
}

// Guard wraps store with breaker.
func Guard(store Store, breaker *resilience.Breaker) *GuardedStore {
	return &GuardedStore{store: store, breaker: breaker}
}

func (g *GuardedStore) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		out     []byte
		missing bool
	)
	err := g.breaker.Do(func() error {
		var err error
		out, err = g.store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			missing = true
			return nil
		}
		return err
	})
	if missing {
		return nil, ErrNotFound
	}
	return out, err
}

func (g *GuardedStore) Put(ctx context.Context, key string, value []byte) error {
	return g.breaker.Do(func() error {
		return g.store.Put(ctx, key, value)
	})
}

func (g *GuardedStore) Delete(ctx context.Context, key string) error {
	return g.breaker.Do(func() error {
		return g.store.Delete(ctx, key)
	})
}

// State reports the breaker state.
func (g *GuardedStore) State() resilience.State {
	return g.breaker.State()
}

func (g *GuardedStore) Close() error {
	return g.store.Close()
}
