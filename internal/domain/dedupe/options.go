// Package dedupe provides idempotency tracking keyed by caller-supplied
// request keys.
package dedupe

// Option applies a configuration option to the in-memory key store.
type Option func(*inMemoryKeyStore)

// WithMaxSize bounds the number of tracked keys. A value of zero or below
// disables eviction.
func WithMaxSize(size int) Option {
	return func(s *inMemoryKeyStore) {
		s.maxSize = size
	}
}
