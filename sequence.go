package gather

import (
	"fmt"
	"strings"
	"sync"
)

// Sequence is an append-only ordered collection guarded by a mutex.
//
// It is the collection point for a gather run: every mutation goes
// through the lock, so exactly one task manipulates the contents at any
// instant. The zero value is ready to use.
type Sequence[T comparable] struct {
	mu    sync.Mutex
	items []T
}

// NewSequence returns an empty Sequence.
func NewSequence[T comparable]() *Sequence[T] {
	return &Sequence[T]{}
}

// Append adds v at the end of the sequence.
//
// Safe for concurrent use from multiple tasks.
func (s *Sequence[T]) Append(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, v)
}

// Len returns the number of elements appended so far.
func (s *Sequence[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Values returns a copy of the current contents in append order.
func (s *Sequence[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// IndexOf reports the position of the first occurrence of v.
//
// The boolean is false when v is absent. Absence is an expected outcome
// the caller branches on, not an error.
func (s *Sequence[T]) IndexOf(v T) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item == v {
			return i, true
		}
	}
	return 0, false
}

// String renders the contents like a Go slice literal.
func (s *Sequence[T]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteByte('[')
	for i, item := range s.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", item)
	}
	b.WriteByte(']')
	return b.String()
}
