package state

import "sync"

// Computed is a lazily evaluated value derived from one or more Versioned
// dependencies. Get recomputes only when a dependency's version moved since
// the previous evaluation; unrelated writes cost nothing.
type Computed[T any] struct {
	mu    sync.Mutex
	fn    func() T
	deps  []Versioned
	seen  []uint64
	val   T
	valid bool
}

// NewComputed creates a Computed evaluating fn over deps. fn must only read
// state reachable through deps, otherwise changes to it go unnoticed.
func NewComputed[T any](fn func() T, deps ...Versioned) *Computed[T] {
	return &Computed[T]{
		fn:   fn,
		deps: deps,
		seen: make([]uint64, len(deps)),
	}
}

// Get returns the derived value, recomputing it if a dependency changed.
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	versions := make([]uint64, len(c.deps))
	stale := !c.valid
	for i, d := range c.deps {
		versions[i] = d.Version()
		if versions[i] != c.seen[i] {
			stale = true
		}
	}

	if stale {
		c.val = c.fn()
		c.seen = versions
		c.valid = true
	}
	return c.val
}

// Version lets a Computed be the dependency of another Computed. It moves
// whenever any dependency moves.
func (c *Computed[T]) Version() uint64 {
	var sum uint64
	for _, d := range c.deps {
		sum += d.Version()
	}
	return sum
}
