package state

// Readable is the read side of a Signal or Computed handed to consumers that
// must not write.
type Readable[T any] interface {
	Versioned
	Get() T
}

// Watchable is a Readable that can also push changes.
type Watchable[T any] interface {
	Readable[T]
	Subscribe(fn func(T)) (unsubscribe func())
}

var (
	_ Watchable[int] = (*Signal[int])(nil)
	_ Readable[int]  = (*Computed[int])(nil)
)
