/*
Package resilience provides a circuit breaker for the save store.

A save store that keeps failing (a full disk, a corrupted database) should
not make every command that autosaves wait for it. The breaker counts
failures and, once ReadyToTrip says so, fails calls fast with
ErrCircuitOpen until Timeout has passed. It then lets MaxRequests trial
calls through and closes again if they all succeed.

# Usage

	breaker := resilience.New("saves", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	err := breaker.Do(func() error {
		return store.Put(ctx, key, value)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
