// Package stream adapts gather's Observer contract to channels.
//
// An Observer forwards lifecycle events and result snapshots into
// buffered channels with an explicit overflow policy, so consumers can
// range over a run's progress without coupling the run to their pace.
package stream

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a2y-d5l/gather"
)

// closeGrace is how long Close waits for staged items to reach the
// consumer before abandoning them.
const closeGrace = time.Second

// Drops reports the number of items dropped by an Observer due to
// overflow or an abandoned Close flush.
type Drops struct {
	// Events is the number of dropped gather.Event values.
	Events uint64

	// Results is the number of dropped gather.Result values.
	Results uint64
}

// Observer implements gather.Observer and forwards events/results into
// channels.
//
// It is safe under concurrent HandleEvent calls. A single internal
// goroutine owns the outbound channels, so Close never races a send.
type Observer struct {
	events  chan gather.Event
	results chan gather.Result
	inbox   chan gather.Event

	// closing stops intake, flushed reports the inbox drained, done
	// aborts blocking sends. Closed in that order by Close/run.
	closing chan struct{}
	flushed chan struct{}
	done    chan struct{}

	cfg            config
	wg             sync.WaitGroup
	droppedEvents  atomic.Uint64
	droppedResults atomic.Uint64
	closeOnce      sync.Once
}

// newInbox sizes the staging channel to absorb short bursts for the
// drop policies without being unbounded.
func newInbox(evtBufSize, resBufSize int) chan gather.Event {
	const headroom = 256
	size := max(defaultInboxSize, max(evtBufSize, resBufSize)*2+headroom)
	return make(chan gather.Event, size)
}

// NewObserver constructs an Observer with optional configuration.
//
// Defaults:
//   - EventBuffer: 1024
//   - ResultBuffer: 1024
//   - OverflowPolicy: DropNewest
func NewObserver(opts ...Option) *Observer {
	c := config{
		eventBuf:  defaultEventBufSize,
		resultBuf: defaultResultBufSize,
		policy:    DropNewest,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.eventBuf < 0 {
		c.eventBuf = 0
	}
	if c.resultBuf < 0 {
		c.resultBuf = 0
	}

	o := &Observer{
		cfg:     c,
		events:  make(chan gather.Event, c.eventBuf),
		results: make(chan gather.Result, c.resultBuf),
		inbox:   newInbox(c.eventBuf, c.resultBuf),
		closing: make(chan struct{}),
		flushed: make(chan struct{}),
		done:    make(chan struct{}),
	}

	o.wg.Go(func() {
		o.run()
	})

	return o
}

// HandleEvent forwards an event and (when present) its result snapshot,
// obeying the configured overflow policy.
//
// Events arriving after Close has begun are counted as drops.
func (o *Observer) HandleEvent(e gather.Event) {
	if o == nil {
		return
	}

	select {
	case <-o.closing:
		o.countDrop(e)
		return
	default:
	}

	switch o.cfg.policy {
	case Block:
		select {
		case o.inbox <- e:
		case <-o.closing:
			o.countDrop(e)
		}

	case DropOldest, DropNewest:
		select {
		case o.inbox <- e:
		default:
			// Inbox full counts as an overflow drop.
			o.countDrop(e)
		}

	default:
		panic(fmt.Errorf("unknown overflow policy: %v", o.cfg.policy))
	}
}

// Events returns a read-only channel of gather.Event values.
//
// The channel is closed by Close.
func (o *Observer) Events() <-chan gather.Event {
	if o == nil {
		ch := make(chan gather.Event)
		close(ch)
		return ch
	}
	return o.events
}

// Results returns a read-only channel of gather.Result values.
//
// The channel is closed by Close.
func (o *Observer) Results() <-chan gather.Result {
	if o == nil {
		ch := make(chan gather.Result)
		close(ch)
		return ch
	}
	return o.results
}

// Drops returns current drop counters.
func (o *Observer) Drops() Drops {
	if o == nil {
		return Drops{}
	}
	return Drops{
		Events:  o.droppedEvents.Load(),
		Results: o.droppedResults.Load(),
	}
}

// Close stops intake, flushes already-staged items to the consumer and
// closes the outbound channels.
//
// Close always terminates: items the consumer has not received within a
// short grace period are abandoned and counted as drops. Safe to call
// multiple times.
func (o *Observer) Close() {
	if o == nil {
		return
	}

	o.closeOnce.Do(func() {
		close(o.closing)

		select {
		case <-o.flushed:
		case <-time.After(closeGrace):
			// Stalled consumer; abort any blocking sends.
			close(o.done)
		}

		// Wait for the forwarding goroutine to stop before closing the
		// outbound channels.
		o.wg.Wait()

		// An event racing Close can be staged after the final drain;
		// account for it rather than losing it silently.
		for {
			select {
			case e := <-o.inbox:
				o.countDrop(e)
			default:
				close(o.events)
				close(o.results)
				return
			}
		}
	})
}

func (o *Observer) countDrop(e gather.Event) {
	o.droppedEvents.Add(1)
	if e.Result != nil {
		o.droppedResults.Add(1)
	}
}

// run forwards staged events until Close. The inbox is drained
// preferentially so items staged before Close are flushed, not lost.
func (o *Observer) run() {
	for {
		select {
		case msg := <-o.inbox:
			o.forward(msg)
		default:
			select {
			case msg := <-o.inbox:
				o.forward(msg)
			case <-o.closing:
				for {
					select {
					case msg := <-o.inbox:
						o.forward(msg)
					default:
						close(o.flushed)
						return
					}
				}
			}
		}
	}
}

func (o *Observer) forward(e gather.Event) {
	o.sendEvent(e)
	if e.Result != nil {
		o.sendResult(*e.Result)
	}
}

func (o *Observer) sendEvent(e gather.Event) {
	switch o.cfg.policy {
	case Block:
		// Prefer delivery; escape only once Close has given up on the
		// consumer, counting the item as a drop.
		select {
		case o.events <- e:
			return
		default:
		}
		select {
		case o.events <- e:
		case <-o.done:
			o.droppedEvents.Add(1)
		}

	case DropOldest:
		// Try to send; if full, evict one buffered item and retry.
		select {
		case o.events <- e:
			return
		default:
		}
		select {
		case <-o.events:
		default:
		}
		select {
		case o.events <- e:
		default:
			o.droppedEvents.Add(1)
		}

	case DropNewest:
		select {
		case o.events <- e:
		default:
			o.droppedEvents.Add(1)
		}

	default:
		panic(fmt.Errorf("unknown overflow policy: %v", o.cfg.policy))
	}
}

func (o *Observer) sendResult(r gather.Result) {
	switch o.cfg.policy {
	case Block:
		select {
		case o.results <- r:
			return
		default:
		}
		select {
		case o.results <- r:
		case <-o.done:
			o.droppedResults.Add(1)
		}

	case DropOldest:
		select {
		case o.results <- r:
			return
		default:
		}
		select {
		case <-o.results:
		default:
		}
		select {
		case o.results <- r:
		default:
			o.droppedResults.Add(1)
		}

	case DropNewest:
		select {
		case o.results <- r:
		default:
			o.droppedResults.Add(1)
		}

	default:
		panic(fmt.Errorf("unknown overflow policy: %v", o.cfg.policy))
	}
}
