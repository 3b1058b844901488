// Package queue provides the bounded in-memory job queue feeding the workers.
package queue

import (
	"context"
	"sync"
)

const defaultCapacity = 1024

// InMemoryQueue is a bounded FIFO of jobs. Enqueue blocks while the queue is
// full; consumers select on Dequeue and Done.
type InMemoryQueue[T any] struct {
	items  chan T
	closed chan struct{}
	once   sync.Once
}

// New creates a queue with configuration options.
func New[T any](opts ...Option) *InMemoryQueue[T] {
	c := config{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&c)
	}
	return &InMemoryQueue[T]{
		items:  make(chan T, c.capacity),
		closed: make(chan struct{}),
	}
}

// Enqueue adds item, waiting for space until ctx is done or the queue closes.
func (q *InMemoryQueue[T]) Enqueue(ctx context.Context, item T) error {
	select {
	case <-q.closed:
		return ErrClosed
	default:
	}
	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closed:
		return ErrClosed
	}
}

// Dequeue returns the receive side of the queue. It is never closed; watch
// Done to learn about shutdown.
func (q *InMemoryQueue[T]) Dequeue() <-chan T {
	return q.items
}

// Done is closed once Close has been called.
func (q *InMemoryQueue[T]) Done() <-chan struct{} {
	return q.closed
}

// Len returns the number of queued items.
func (q *InMemoryQueue[T]) Len() int {
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *InMemoryQueue[T]) Cap() int {
	return cap(q.items)
}

// Close stops accepting items. Safe to call more than once.
func (q *InMemoryQueue[T]) Close() error {
	q.once.Do(func() { close(q.closed) })
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue[T]) IsClosed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}
