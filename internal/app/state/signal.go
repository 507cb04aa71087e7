// Package state provides the reactive containers the list-state services
// are built from. A Signal holds a value and notifies subscribers on every
// write; a Computed derives a value from signals and recomputes only when one
// of its dependencies has changed since the last read.
//
// Both are safe for concurrent use. Writes are last-write-wins: nothing
// orders two Sets racing from different goroutines.
package state

import "sync"

// Versioned is implemented by anything a Computed can depend on.
type Versioned interface {
	Version() uint64
}

// Signal is a readable, writable value with change notification.
//
// Get returns a copy under a read lock. Set and Update take the write lock,
// bump the version and then notify subscribers outside the lock with the
// value as written.
type Signal[T any] struct {
	mu      sync.RWMutex
	val     T
	version uint64
	subs    map[uint64]func(T)
	nextSub uint64
}

// NewSignal creates a Signal initialized with val.
func NewSignal[T any](val T) *Signal[T] {
	return &Signal[T]{val: val}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

// Version returns a counter that increases on every write.
func (s *Signal[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set replaces the value and notifies subscribers.
func (s *Signal[T]) Set(val T) {
	s.mu.Lock()
	s.val = val
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, val)
}

// Update applies fn to the value under the write lock and notifies
// subscribers with the result.
func (s *Signal[T]) Update(fn func(*T)) {
	s.mu.Lock()
	fn(&s.val)
	s.version++
	val := s.val
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, val)
}

// Subscribe registers fn to be called after every write. The returned
// function removes the subscription; calling it twice is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[uint64]func(T))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// snapshotSubs must be called with s.mu held.
func (s *Signal[T]) snapshotSubs() []func(T) {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify[T any](subs []func(T), val T) {
	for _, fn := range subs {
		fn(val)
	}
}
