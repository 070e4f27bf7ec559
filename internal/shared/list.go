// Package shared holds the small lock-guarded containers that connection
// goroutines use to hand state to one another.
package shared

import (
	"slices"
	"sync"
)

// List is a slice guarded by a mutex. Every method is atomic with respect to
// the others; callers never see a partially applied update.
type List[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

func (l *List[T]) Append(v T) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, v)
	return len(l.items) - 1
}

// Replace swaps the whole contents.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = slices.Clone(items)
}

// Fill resizes the list to n copies of v.
func (l *List[T]) Fill(n int, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]T, n)
	for i := range l.items {
		l.items[i] = v
	}
}

// Set overwrites index i. It reports false when i is out of range.
func (l *List[T]) Set(i int, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

func (l *List[T]) Get(i int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// RemoveAt deletes index i and shifts the remainder down.
func (l *List[T]) RemoveAt(i int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v, true
}

// RemoveFunc deletes the first element for which match returns true.
func (l *List[T]) RemoveFunc(match func(T) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.items, match)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// Snapshot returns a copy of the contents. Later mutations of the list are
// not visible through it.
func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.items)
}

// All reports whether every element satisfies pred. An empty list reports
// false, since callers use it to ask "is everyone ready".
func (l *List[T]) All(pred func(T) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.items) == 0 {
		return false
	}
	for _, v := range l.items {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Any reports whether some element satisfies pred.
func (l *List[T]) Any(pred func(T) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.ContainsFunc(l.items, pred)
}

// Count is the number of elements satisfying pred.
func (l *List[T]) Count(pred func(T) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, v := range l.items {
		if pred(v) {
			n++
		}
	}
	return n
}

// Remove deletes the first element equal to v.
func Remove[T comparable](l *List[T], v T) bool {
	return l.RemoveFunc(func(o T) bool { return o == v })
}
