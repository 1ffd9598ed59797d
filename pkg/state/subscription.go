package state

import (
	"context"
	"sync"
)

// Subscription is a read-only, ordered view of a Cell's updates. Values are
// queued without bound so the publisher never blocks on a slow reader.
type Subscription[T any] struct {
	cell *Cell[T]
	out  chan T
	done chan struct{}

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []T
	finished bool
	stopOnce sync.Once
}

func newSubscription[T any](cell *Cell[T]) *Subscription[T] {
	s := &Subscription[T]{
		cell: cell,
		out:  make(chan T),
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// C returns the delivery channel. It is closed once the subscription ends
// and all queued values were delivered.
func (s *Subscription[T]) C() <-chan T {
	return s.out
}

// Next waits for the next value. ok is false when the subscription ended or
// ctx is done.
func (s *Subscription[T]) Next(ctx context.Context) (v T, ok bool) {
	select {
	case v, ok = <-s.out:
		return v, ok
	case <-ctx.Done():
		return v, false
	}
}

// Cancel stops delivery immediately and detaches from the cell. Undelivered
// values are dropped.
func (s *Subscription[T]) Cancel() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.cell.unsubscribe(s)
		s.finish()
	})
}

func (s *Subscription[T]) push(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.queue = append(s.queue, v)
	s.cond.Signal()
}

func (s *Subscription[T]) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	s.cond.Signal()
}

func (s *Subscription[T]) run() {
	defer close(s.out)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.finished {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		v := s.queue[0]
		var zero T
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- v:
		case <-s.done:
			return
		}
	}
}
