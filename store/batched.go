package store

import "sync/atomic"

// Batched defers subscriber notification until Flush. Any number of
// dispatches between two flushes produce a single notification, which is
// how batched-subscribe stores deliver updates asynchronously.
type Batched struct {
	Store

	pending atomic.Bool
	detach  func()
	subs    subscribers
}

// NewBatched wraps inner. The wrapper subscribes to inner once and keeps its
// own subscriber list.
func NewBatched(inner Store) *Batched {
	b := &Batched{Store: inner}
	b.detach = inner.Subscribe(func() {
		b.pending.Store(true)
	})
	return b
}

func (b *Batched) Subscribe(listener func()) func() {
	return b.subs.add(listener)
}

// Pending reports whether a dispatch happened since the last Flush.
func (b *Batched) Pending() bool {
	return b.pending.Load()
}

// Flush notifies subscribers once if any dispatch happened since the last
// flush and reports whether it did.
func (b *Batched) Flush() bool {
	if !b.pending.CompareAndSwap(true, false) {
		return false
	}
	b.subs.notify()
	return true
}

// Close detaches the wrapper from the inner store.
func (b *Batched) Close() {
	b.detach()
}
