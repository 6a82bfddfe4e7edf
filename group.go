package gather

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// Group is a fixed fan-out of n indexed tasks.
//
// It is NOT safe to copy. Use a new Group per Run.
type Group struct {
	n  int
	fn TaskFunc

	maxWorkers int
	obs        Observer

	// internal per-run state
	runID    string
	mu       sync.Mutex // protects firstErr only
	firstErr error
}

// NewGroup creates a Group that will run fn once per index in [0, n).
//
// It is cheap; all work happens in Run.
func NewGroup(n int, fn TaskFunc, opts ...Option) *Group {
	g := &Group{
		n:          n,
		fn:         fn,
		maxWorkers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxWorkers <= 0 {
		g.maxWorkers = runtime.NumCPU()
	}
	return g
}

// Run executes all n tasks and blocks until every one of them has
// completed.
//
// Join-or-fail semantics: no task is abandoned. Tasks keep running after
// another task has failed, and Run returns only once all of them have
// finished. The first non-nil task error is returned; the Summary still
// contains a Result for every task.
//
// A task that panics is not recovered; the panic takes down the run.
//
// NOTE: A Group instance is intended for a single Run call.
func (g *Group) Run(ctx context.Context) (Summary, error) {
	if ctx == nil {
		return Summary{}, errors.New("gather run: nil context")
	}
	if g.n < 0 {
		return Summary{}, fmt.Errorf("gather run: negative task count %d", g.n)
	}
	if g.n > 0 && g.fn == nil {
		return Summary{}, errors.New("gather run: nil task func")
	}

	summary := Summary{Results: make([]Result, g.n)}
	if g.n == 0 {
		// Nothing to spawn; complete without blocking.
		return summary, nil
	}

	g.runID = uuid.NewString()
	g.firstErr = nil

	pool, err := ants.NewPool(min(g.maxWorkers, g.n))
	if err != nil {
		return summary, fmt.Errorf("gather run: create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range g.n {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			g.runTask(ctx, i, &summary.Results[i])
		}); err != nil {
			// The pool is sized for this group and not released mid-run,
			// so Submit only fails on a closed pool.
			wg.Done()
			submitErr := fmt.Errorf("gather run: submit task %d: %w", i, err)
			summary.Results[i] = Result{Index: i, Err: submitErr}
			g.setFirstErr(submitErr)
		}
	}
	wg.Wait()

	g.mu.Lock()
	firstErr := g.firstErr
	g.mu.Unlock()

	summary.Failed = firstErr != nil
	if firstErr != nil {
		return summary, firstErr
	}

	// If the context was canceled but no task reported it, propagate
	// ctx.Err() so callers can distinguish.
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

// runTask runs a single task and finalizes its Result slot.
//
// Each task writes only its own slot, so no lock is needed on Results;
// wg.Wait in Run orders all writes before the caller reads them.
func (g *Group) runTask(ctx context.Context, i int, res *Result) {
	res.Index = i
	res.StartedAt = time.Now()

	g.emit(Event{
		Type:  EventTaskStarted,
		Time:  res.StartedAt,
		RunID: g.runID,
		Index: i,
	})

	err := g.fn(ctx, i)

	res.Err = err
	res.CompletedAt = time.Now()
	if err != nil {
		g.setFirstErr(fmt.Errorf("task %d: %w", i, err))
	}

	g.emit(Event{
		Type:   EventTaskFinished,
		Time:   res.CompletedAt,
		RunID:  g.runID,
		Index:  i,
		Result: res,
	})
}

func (g *Group) setFirstErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.firstErr == nil {
		g.firstErr = err
	}
}

// emit forwards an event to the optional observer (synchronous).
//
// Event is passed by value; the Result pointer (if present) is treated
// as a finalized snapshot.
func (g *Group) emit(ev Event) {
	if g.obs != nil {
		g.obs.HandleEvent(ev)
	}
}
