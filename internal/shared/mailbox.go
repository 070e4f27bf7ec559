package shared

import (
	"context"
	"sync"
)

// Mailbox is a single slot, last-write-wins handoff between one producer and
// one consumer. A Put that lands before the consumer wakes overwrites the
// pending value; the overwritten value is lost. Only the freshest value is
// ever worth sending.
type Mailbox[T any] struct {
	mu      sync.Mutex
	v       T
	pending bool
	signal  chan struct{}
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{signal: make(chan struct{}, 1)}
}

// Put replaces any pending value and wakes the consumer.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.v = v
	m.pending = true
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// Wait blocks until a value is pending or ctx is done, then takes the value
// and leaves the slot empty.
func (m *Mailbox[T]) Wait(ctx context.Context) (T, error) {
	for {
		if v, ok := m.take(); ok {
			return v, nil
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-m.signal:
		}
	}
}

// Peek returns the pending value without taking it.
func (m *Mailbox[T]) Peek() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.v, m.pending
}

func (m *Mailbox[T]) take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.pending {
		return zero, false
	}
	v := m.v
	m.v = zero
	m.pending = false
	return v, true
}
