package gather

import "context"

// Collect runs n tasks and gathers each task's value into a shared
// Sequence.
//
// Task i's value is appended under the sequence lock, so concurrent
// appends never corrupt the collection. The returned slice reflects
// completion order, which is unspecified.
func Collect[T comparable](
	ctx context.Context,
	n int,
	fn func(ctx context.Context, i int) (T, error),
	opts ...Option,
) ([]T, error) {
	seq := NewSequence[T]()

	g := NewGroup(n, func(ctx context.Context, i int) error {
		v, err := fn(ctx, i)
		if err != nil {
			return err
		}
		seq.Append(v)
		return nil
	}, opts...)

	if _, err := g.Run(ctx); err != nil {
		return nil, err
	}
	return seq.Values(), nil
}

// Indices runs n tasks that each append their own index to a shared
// sequence.
//
// The result is a permutation of [0, n): exactly n elements, one per
// index, no duplicates, no omissions, in arbitrary order. For n == 0 it
// returns an empty slice without blocking.
func Indices(ctx context.Context, n int, opts ...Option) ([]int, error) {
	return Collect(ctx, n, func(_ context.Context, i int) (int, error) {
		return i, nil
	}, opts...)
}
