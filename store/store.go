// Package store provides thread-safe keyed storage for passing values
// out of concurrently running tasks.
//
// Unlike closures alone, a Store gives:
//   - Type-safe access via generic Put/Load functions
//   - Explicit key management (keys are visible in code)
//   - Thread-safe concurrent access
//
// Absence is signaled explicitly: Load returns (zero, false) for a
// missing key or a type mismatch, and the caller branches on it. Only
// MustLoad treats absence as fatal.
package store

import (
	"fmt"
	"sync"
)

// Store is a thread-safe map from string keys to arbitrary values.
type Store struct {
	mu   sync.RWMutex
	data map[string]any
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string]any),
	}
}

// Put saves a value under the given key, replacing any previous value.
//
// Thread-safe: can be called concurrently from multiple tasks.
func Put[T any](s *Store, key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Load retrieves a value by key.
//
// The boolean is false when the key is absent or the stored value is
// not of type T; the zero value of T is returned alongside.
func Load[T any](s *Store, key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return v, true
}

// MustLoad retrieves a value by key and panics if it is absent or of
// the wrong type.
//
// Use only where absence is a programming error.
func MustLoad[T any](s *Store, key string) T {
	v, ok := Load[T](s, key)
	if !ok {
		panic(fmt.Sprintf("store: no value of type %T under key %q", v, key))
	}
	return v
}

// Delete removes the value under key, if any.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
