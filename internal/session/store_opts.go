package session

import "time"

type StoreOpt func(*Store)

// WithClock overrides the clock used for session timestamps.
func WithClock(now func() time.Time) StoreOpt {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) StoreOpt {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithPersistFailureHook registers a callback invoked whenever a durability
// write fails. Used to feed the degraded-persistence metric.
func WithPersistFailureHook(fn func()) StoreOpt {
	return func(s *Store) {
		s.onPersistFail = fn
	}
}
