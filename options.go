package gather

// Option configures a Group at construction time.
type Option func(*Group)

// WithMaxWorkers caps how many tasks run concurrently.
//
// A value <= 0 will be normalized to runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return func(g *Group) {
		g.maxWorkers = n
	}
}

// WithObserver attaches an observer that receives all lifecycle events.
//
// This allows callers to plug in TUIs, loggers, or test recorders.
// The stream package provides a channel-based adapter with explicit
// overflow policies.
func WithObserver(obs Observer) Option {
	return func(g *Group) {
		g.obs = obs
	}
}
