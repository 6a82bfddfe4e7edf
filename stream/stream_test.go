package stream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a2y-d5l/gather"
	"github.com/a2y-d5l/gather/stream"
)

func TestStart_ForwardsEveryEventUnderBlock(t *testing.T) {
	const n = 20

	h := stream.Start(context.Background(), n,
		func(_ context.Context, _ int) error { return nil },
		nil,
		stream.WithOverflowPolicy(stream.Block),
	)

	started := make(map[int]int)
	finished := make(map[int]int)
	for ev := range h.Events() {
		switch ev.Type {
		case gather.EventTaskStarted:
			started[ev.Index]++
		case gather.EventTaskFinished:
			finished[ev.Index]++
		}
	}

	summary, err := h.Wait()
	require.NoError(t, err)
	require.False(t, summary.Failed)
	require.Len(t, summary.Results, n)

	for i := range n {
		require.Equal(t, 1, started[i], "task %d started events", i)
		require.Equal(t, 1, finished[i], "task %d finished events", i)
	}
	require.Zero(t, h.Drops())
}

func TestStart_ResultsCarryTaskErrors(t *testing.T) {
	sentinel := errors.New("bad task")

	h := stream.Start(context.Background(), 4,
		func(_ context.Context, i int) error {
			if i == 1 {
				return sentinel
			}
			return nil
		},
		nil,
		stream.WithOverflowPolicy(stream.Block),
	)

	var total int
	var failedIdx []int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range h.Results() {
			total++
			if res.Err != nil {
				failedIdx = append(failedIdx, res.Index)
			}
		}
	}()
	go func() {
		for range h.Events() {
		}
	}()

	summary, err := h.Wait()
	require.ErrorIs(t, err, sentinel)
	require.True(t, summary.Failed)

	<-done
	require.Equal(t, 4, total)
	require.Equal(t, []int{1}, failedIdx)
}

func TestStart_ZeroTasksCompletesImmediately(t *testing.T) {
	h := stream.Start(context.Background(), 0,
		func(_ context.Context, _ int) error { return nil },
		nil,
	)

	for range h.Events() {
	}
	summary, err := h.Wait()
	require.NoError(t, err)
	require.Empty(t, summary.Results)
}

func TestStart_BlockPolicyLargeFanOutCompletes(t *testing.T) {
	// Buffers far smaller than the fan-out: completion depends on both
	// channels being drained while the run is in flight.
	const n = 5000

	h := stream.Start(context.Background(), n,
		func(_ context.Context, _ int) error { return nil },
		nil,
		stream.WithOverflowPolicy(stream.Block),
		stream.WithEventBuffer(8),
		stream.WithResultBuffer(8),
	)

	var events, results int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range h.Results() {
			results++
		}
	}()
	for range h.Events() {
		events++
	}
	<-done

	summary, err := h.Wait()
	require.NoError(t, err)
	require.Len(t, summary.Results, n)
	require.Equal(t, 2*n, events)
	require.Equal(t, n, results)
	require.Zero(t, h.Drops())
}

func TestObserver_CloseTerminatesWithStalledConsumer(t *testing.T) {
	obs := stream.NewObserver(
		stream.WithOverflowPolicy(stream.Block),
		stream.WithEventBuffer(0),
		stream.WithResultBuffer(0),
	)

	res := gather.Result{Index: 0}
	for i := range 10 {
		obs.HandleEvent(gather.Event{
			Type:   gather.EventTaskFinished,
			Index:  i,
			Result: &res,
		})
	}

	// Nobody ever consumes; Close must still return, abandoning the
	// undeliverable items as counted drops.
	obs.Close()

	drops := obs.Drops()
	require.NotZero(t, drops.Events)
	require.NotZero(t, drops.Results)
}

func TestObserver_DropNewestCountsOverflow(t *testing.T) {
	obs := stream.NewObserver(
		stream.WithEventBuffer(0),
		stream.WithResultBuffer(0),
	)

	// Nobody consumes; with zero buffers every forwarded event
	// eventually overflows.
	for i := range 100 {
		obs.HandleEvent(gather.Event{Type: gather.EventTaskStarted, Index: i})
	}
	obs.Close()

	drops := obs.Drops()
	require.NotZero(t, drops.Events)
}

func TestObserver_CloseIsIdempotent(t *testing.T) {
	obs := stream.NewObserver()
	obs.Close()
	require.NotPanics(t, obs.Close)
}

func TestObserver_NilIsSafe(t *testing.T) {
	var obs *stream.Observer
	require.NotPanics(t, func() {
		obs.HandleEvent(gather.Event{})
		obs.Close()
	})
	_, open := <-obs.Events()
	require.False(t, open)
	require.Zero(t, obs.Drops())
}
