package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a2y-d5l/gather/store"
)

func TestPutLoad(t *testing.T) {
	s := store.New()

	store.Put(s, "string", "hello")
	store.Put(s, "int", 42)
	store.Put(s, "slice", []string{"a", "b"})

	v, ok := store.Load[string](s, "string")
	require.True(t, ok)
	require.Equal(t, "hello", v)

	i, ok := store.Load[int](s, "int")
	require.True(t, ok)
	require.Equal(t, 42, i)

	sl, ok := store.Load[[]string](s, "slice")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, sl)

	require.Equal(t, 3, s.Len())
}

func TestLoadMissing(t *testing.T) {
	s := store.New()

	v, ok := store.Load[string](s, "nonexistent")
	require.False(t, ok)
	require.Empty(t, v)
}

func TestLoadWrongType(t *testing.T) {
	s := store.New()
	store.Put(s, "key", "string value")

	v, ok := store.Load[int](s, "key")
	require.False(t, ok)
	require.Zero(t, v)
}

func TestMustLoad(t *testing.T) {
	s := store.New()
	store.Put(s, "key", 42)

	require.Equal(t, 42, store.MustLoad[int](s, "key"))
	require.Panics(t, func() {
		store.MustLoad[int](s, "nonexistent")
	})
	require.Panics(t, func() {
		store.MustLoad[float64](s, "key")
	})
}

func TestDelete(t *testing.T) {
	s := store.New()
	store.Put(s, "key", 1)
	s.Delete("key")

	_, ok := store.Load[int](s, "key")
	require.False(t, ok)
	require.Zero(t, s.Len())
}

func TestConcurrentAccess(t *testing.T) {
	// Run with: go test -race
	s := store.New()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Put(s, fmt.Sprintf("key-%d", n), n)
		}(i)
	}
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Load[int](s, "key-0")
		}()
	}
	wg.Wait()

	require.Equal(t, 100, s.Len())
}
