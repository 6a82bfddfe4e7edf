package stream

// OverflowPolicy controls how an Observer behaves when buffers are full.
type OverflowPolicy uint8

const (
	// DropNewest drops the newest item when the channel buffer is full.
	//
	// This policy never blocks the run and is typically the best default.
	DropNewest OverflowPolicy = iota

	// DropOldest drops one buffered item to make room for the newest.
	//
	// This policy never blocks and is useful for consumers that prefer
	// "latest state".
	DropOldest

	// Block blocks until the consumer receives, so nothing is dropped
	// while the observer is open.
	//
	// This policy may slow the run and is best suited for tests where
	// fidelity matters more than throughput. Callers must keep draining
	// BOTH Events and Results until the channels are closed, or the run
	// stalls on the first full buffer. Items still undeliverable when
	// Close is called are abandoned and counted as drops, so Close
	// itself always terminates.
	Block
)

const (
	defaultEventBufSize  = 1024
	defaultResultBufSize = 1024
	defaultInboxSize     = 64
)

// Option configures an Observer.
type Option func(*config)

type config struct {
	eventBuf  int
	resultBuf int
	policy    OverflowPolicy
}

// WithEventBuffer sets the event channel buffer size.
func WithEventBuffer(n int) Option {
	return func(c *config) {
		c.eventBuf = n
	}
}

// WithResultBuffer sets the result channel buffer size.
func WithResultBuffer(n int) Option {
	return func(c *config) {
		c.resultBuf = n
	}
}

// WithOverflowPolicy sets the overflow policy.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}
