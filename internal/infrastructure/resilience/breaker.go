package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxRequests is the number of trial calls let through while half-open;
	// that many successes close the breaker again
	MaxRequests uint32
	// Interval clears the closed-state counts; zero keeps them forever
	Interval time.Duration
	// Timeout is how long the breaker stays open before a trial
	Timeout time.Duration
	// ReadyToTrip decides, after a failure, whether to open
	ReadyToTrip func(counts Counts) bool
	// IsFailure classifies call errors; nil errors are always successes
	IsFailure func(err error) bool
	// OnStateChange is called with the lock released
	OnStateChange func(name string, from State, to State)
	// Now is the clock, time.Now by default
	Now func() time.Time
}

// Counts holds the statistics for the current generation
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker stops calling a failing dependency for a cool-down period
type Breaker struct {
	name     string
	settings Settings

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	expiry     time.Time
	pending    []transition
}

// DefaultReadyToTrip opens after five consecutive failures
func DefaultReadyToTrip(counts Counts) bool {
	return counts.ConsecutiveFailures >= 5
}

// DefaultIsFailure ignores cancellation, which says nothing about the
// dependency's health
func DefaultIsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// New creates a closed circuit breaker
func New(name string, settings Settings) *Breaker {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = DefaultReadyToTrip
	}
	if settings.IsFailure == nil {
		settings.IsFailure = DefaultIsFailure
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}

	b := &Breaker{name: name, settings: settings}
	b.startGeneration(settings.Now())
	return b
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, applying any due transition
func (b *Breaker) State() State {
	b.mu.Lock()
	state, _ := b.current(b.settings.Now())
	changes := b.drain()
	b.mu.Unlock()

	b.notify(changes)
	return state
}

// Counts returns a copy of the current generation's counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn unless the breaker is open. fn's error is returned as is.
func (b *Breaker) Do(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			b.after(generation, false)
			panic(r)
		}
	}()

	err = fn()
	b.after(generation, err == nil || !b.settings.IsFailure(err))
	return err
}

type transition struct {
	from, to State
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	state, generation := b.current(b.settings.Now())
	var err error
	switch {
	case state == StateOpen:
		err = ErrCircuitOpen
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		err = ErrTooManyRequests
	default:
		b.counts.Requests++
	}
	changes := b.drain()
	b.mu.Unlock()

	b.notify(changes)
	return generation, err
}

func (b *Breaker) after(before uint64, success bool) {
	b.mu.Lock()
	now := b.settings.Now()
	state, generation := b.current(now)
	if generation == before {
		if success {
			b.onSuccess(state, now)
		} else {
			b.onFailure(state, now)
		}
	}
	changes := b.drain()
	b.mu.Unlock()

	b.notify(changes)
}

func (b *Breaker) onSuccess(state State, now time.Time) {
	b.counts.TotalSuccesses++
	b.counts.ConsecutiveSuccesses++
	b.counts.ConsecutiveFailures = 0
	if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
		b.setState(StateClosed, now)
	}
}

func (b *Breaker) onFailure(state State, now time.Time) {
	b.counts.TotalFailures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if b.settings.ReadyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

// current applies time-based transitions. Callers hold mu.
func (b *Breaker) current(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && !now.Before(b.expiry) {
			b.startGeneration(now)
		}
	case StateOpen:
		if !now.Before(b.expiry) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

// setState moves to state and starts a new generation. Callers hold mu.
func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}
	b.pending = append(b.pending, transition{from: b.state, to: state})
	b.state = state
	b.startGeneration(now)
}

// drain hands queued transitions to the caller. Callers hold mu.
func (b *Breaker) drain() []transition {
	changes := b.pending
	b.pending = nil
	return changes
}

func (b *Breaker) startGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}
	switch b.state {
	case StateClosed:
		b.expiry = time.Time{}
		if b.settings.Interval > 0 {
			b.expiry = now.Add(b.settings.Interval)
		}
	case StateOpen:
		b.expiry = now.Add(b.settings.Timeout)
	case StateHalfOpen:
		b.expiry = time.Time{}
	}
}

func (b *Breaker) notify(changes []transition) {
	if b.settings.OnStateChange == nil {
		return
	}
	for _, c := range changes {
		b.settings.OnStateChange(b.name, c.from, c.to)
	}
}
