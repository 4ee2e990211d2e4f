// Package dedupe provides idempotency tracking keyed by caller-supplied
// request keys, with replay of the originally recorded result.
package dedupe

import (
	"context"
	"sync"
)

// KeyStore records idempotency keys and the result produced for each, so a
// repeated request can be answered with the original outcome.
type KeyStore interface {
	// PutIfAbsent records value under key unless the key was already seen.
	// It returns the stored value and true when the key was already present,
	// or the given value and false when it was newly recorded.
	PutIfAbsent(ctx context.Context, key string, value any) (any, bool)

	// Forget removes a key, allowing the request to be retried. Intended for
	// rollback when a request was recorded but processing failed.
	Forget(ctx context.Context, key string)

	// Size returns the number of keys currently tracked.
	Size() int64
}

// entry is a node in the eviction list.
type entry struct {
	key   string
	value any
	next  *entry
}

// inMemoryKeyStore implements KeyStore with a bounded map plus a singly
// linked eviction list. When maxSize is exceeded the most recently inserted
// older entry is evicted first (LIFO), keeping long-lived keys stable.
// A maxSize of zero or below means unbounded.
type inMemoryKeyStore struct {
	mu      sync.Mutex
	seen    map[string]*entry
	head    *entry
	maxSize int
	size    int64
}

// NewInMemoryKeyStore creates a bounded in-memory KeyStore.
func NewInMemoryKeyStore(opts ...Option) KeyStore {
	s := &inMemoryKeyStore{
		maxSize: 10000,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]*entry)
	return s
}

func (s *inMemoryKeyStore) PutIfAbsent(_ context.Context, key string, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.seen[key]; ok {
		return existing.value, true
	}

	e := &entry{key: key, value: value, next: s.head}
	s.head = e
	s.seen[key] = e
	s.size++

	if s.maxSize > 0 && int(s.size) > s.maxSize {
		s.evictLocked()
	}
	return value, false
}

func (s *inMemoryKeyStore) Forget(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.seen[key]
	if !ok {
		return
	}
	delete(s.seen, key)
	s.unlinkLocked(e)
	s.size--
}

func (s *inMemoryKeyStore) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// evictLocked drops the second entry in the list: the newest key survives and
// the previously newest is evicted. Callers hold s.mu.
func (s *inMemoryKeyStore) evictLocked() {
	if s.head == nil || s.head.next == nil {
		return
	}
	victim := s.head.next
	s.head.next = victim.next
	delete(s.seen, victim.key)
	s.size--
}

// unlinkLocked removes e from the eviction list. Callers hold s.mu.
func (s *inMemoryKeyStore) unlinkLocked(e *entry) {
	if s.head == e {
		s.head = e.next
		return
	}
	for cur := s.head; cur != nil; cur = cur.next {
		if cur.next == e {
			cur.next = e.next
			return
		}
	}
}
