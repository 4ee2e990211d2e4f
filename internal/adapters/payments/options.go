package payments

import (
	"math/rand"
	"time"

	"github.com/shiftsync/shiftsync/internal/domain/dedupe"
)

// SimOption applies a configuration option to the Simulator.
type SimOption func(*Simulator)

// WithLatencyRange sets the simulated processor latency bounds.
func WithLatencyRange(minLatency, maxLatency time.Duration) SimOption {
	return func(s *Simulator) {
		if minLatency > 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithRandomSeed seeds the latency source for reproducible runs.
func WithRandomSeed(seed int64) SimOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic simulation
	}
}

// WithKeyStore sets the idempotency cache backend.
func WithKeyStore(keys dedupe.KeyStore) SimOption {
	return func(s *Simulator) {
		if keys != nil {
			s.keys = keys
		}
	}
}

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) SimOption {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}
