// Package state provides a single-writer state cell with ordered
// publish/subscribe delivery. Exactly one value is current at a time and
// every subscriber observes updates in the order they were published.
package state

import (
	"sync"
)

// Cell holds the current value of type T.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	subs    map[*Subscription[T]]struct{}
	closed  bool
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[*Subscription[T]]struct{}),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Version returns the number of values published since creation.
func (c *Cell[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Set publishes v.
func (c *Cell[T]) Set(v T) {
	c.Update(func(T) T { return v })
}

// Update atomically replaces the current value with fn(current) and
// publishes the result. fn must not call back into the cell.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.value
	}
	c.value = fn(c.value)
	c.version++
	for sub := range c.subs {
		sub.push(c.value)
	}
	return c.value
}

// Subscribe returns a subscription that first yields the current value and
// then every subsequent update.
func (c *Cell[T]) Subscribe() *Subscription[T] {
	sub := newSubscription[T](c)

	c.mu.Lock()
	defer c.mu.Unlock()

	sub.push(c.value)
	if c.closed {
		sub.finish()
		return sub
	}
	c.subs[sub] = struct{}{}
	return sub
}

// Close ends every subscription after its pending values are delivered.
// Later updates are ignored.
func (c *Cell[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for sub := range c.subs {
		sub.finish()
	}
	c.subs = nil
}

func (c *Cell[T]) unsubscribe(sub *Subscription[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, sub)
}
