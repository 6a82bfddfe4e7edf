package stream

import (
	"context"
	"sync"

	"github.com/a2y-d5l/gather"
)

// Handle is an asynchronous run handle that exposes channels for
// events and results.
type Handle struct {
	err     error
	obs     *Observer
	done    chan struct{}
	summary gather.Summary
	mu      sync.Mutex
}

// Start runs a Group in a goroutine and returns a Handle.
//
// runOpts are passed to gather.NewGroup; an observer is automatically
// attached. obsOpts configure the underlying Observer. The observer is
// closed when the run completes, which closes the Events and Results
// channels.
func Start(
	ctx context.Context,
	n int,
	fn gather.TaskFunc,
	runOpts []gather.Option,
	obsOpts ...Option,
) *Handle {
	obs := NewObserver(obsOpts...)
	h := &Handle{
		obs:  obs,
		done: make(chan struct{}),
	}

	opts := make([]gather.Option, 0, len(runOpts)+1)
	opts = append(opts, runOpts...)
	opts = append(opts, gather.WithObserver(obs))
	g := gather.NewGroup(n, fn, opts...)

	go func() {
		defer close(h.done)
		defer obs.Close()

		sum, err := g.Run(ctx)

		h.mu.Lock()
		h.summary = sum
		h.err = err
		h.mu.Unlock()
	}()

	return h
}

// Events returns a read-only channel of events for this run.
func (h *Handle) Events() <-chan gather.Event {
	if h == nil {
		ch := make(chan gather.Event)
		close(ch)
		return ch
	}
	return h.obs.Events()
}

// Results returns a read-only channel of results for this run.
func (h *Handle) Results() <-chan gather.Result {
	if h == nil {
		ch := make(chan gather.Result)
		close(ch)
		return ch
	}
	return h.obs.Results()
}

// Done returns a channel that closes when the run completes.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return h.done
}

// Wait blocks until the run completes and returns its summary and
// error.
func (h *Handle) Wait() (gather.Summary, error) {
	if h == nil {
		return gather.Summary{}, context.Canceled
	}
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.summary, h.err
}

// Drops returns current drop counters for the underlying Observer.
func (h *Handle) Drops() Drops {
	if h == nil {
		return Drops{}
	}
	return h.obs.Drops()
}
