package shared

import "sync"

// Value holds a single value behind a mutex. Load hands back a copy; when T
// holds references, supply a clone function so readers never share
// storage with the writer.
type Value[T any] struct {
	mu    sync.Mutex
	v     T
	clone func(T) T
}

func NewValue[T any](v T) *Value[T] {
	return &Value[T]{v: v}
}

// NewClonedValue returns a Value whose Load deep-copies through clone.
func NewClonedValue[T any](v T, clone func(T) T) *Value[T] {
	return &Value[T]{v: v, clone: clone}
}

func (s *Value[T]) Store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v = v
}

func (s *Value[T]) Load() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clone != nil {
		return s.clone(s.v)
	}
	return s.v
}

// Swap stores v and returns the previous value.
func (s *Value[T]) Swap(v T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.v
	s.v = v
	return old
}
