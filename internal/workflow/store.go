package workflow

import (
	"context"
	"sync"
	"time"
)

// Store keeps transient per-key workflow state in memory. Entries are
// lost on restart, which just forces the user to restart the flow.
//
// Lock gives callers a per-key mutex so that two events for the same key
// are never processed in parallel; across different keys no ordering is
// provided. A janitor evicts entries untouched for longer than the TTL
// so abandoned flows do not grow the map without bound.
type Store[K comparable, T any] struct {
	mu      sync.Mutex
	entries map[K]*storeEntry[T]
	locks   map[K]*sync.Mutex
	ttl     time.Duration
	now     func() time.Time
}

type storeEntry[T any] struct {
	value   T
	touched time.Time
}

func NewStore[K comparable, T any](ttl time.Duration) *Store[K, T] {
	return &Store[K, T]{
		entries: map[K]*storeEntry[T]{},
		locks:   map[K]*sync.Mutex{},
		ttl:     ttl,
		now:     time.Now,
	}
}

// Lock acquires the key's mutex and returns the unlock func.
func (s *Store[K, T]) Lock(key K) (unlock func()) {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Store[K, T]) Get(key K) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	e.touched = s.now()
	return e.value, true
}

func (s *Store[K, T]) Put(key K, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &storeEntry[T]{value: value, touched: s.now()}
}

func (s *Store[K, T]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *Store[K, T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run evicts stale entries until the context is done. A TTL of zero
// disables eviction.
func (s *Store[K, T]) Run(ctx context.Context) error {
	if s.ttl <= 0 {
		<-ctx.Done()
		return nil
	}

	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.evictStale(s.now())
		}
	}
}

func (s *Store[K, T]) evictStale(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if now.Sub(e.touched) < s.ttl {
			continue
		}
		delete(s.entries, key)
		// drop the key's mutex too, unless someone is mid-transition
		if m, ok := s.locks[key]; ok && m.TryLock() {
			m.Unlock()
			delete(s.locks, key)
		}
	}
}
