// Package gather runs a fixed fan-out of indexed tasks and joins them.
//
// A Group spawns N independently scheduled tasks on a bounded worker
// pool. Each task receives its own index in [0, N). Run blocks until
// every task has completed; no task is abandoned. The first task error
// is fatal to the run and is returned from Run once all tasks have
// finished.
//
// # Shared state
//
// Sequence is the collection point: an append-only ordered collection
// guarded by a mutex. All mutation goes through the lock, so exactly one
// task manipulates the collection at any instant. Once Run has returned
// there are no further writers and reads need no lock.
//
// # Observers
//
// A Group emits lifecycle events by calling Observer.HandleEvent(Event).
// The contract is deliberately minimal:
//
//   - HandleEvent MAY be called concurrently.
//   - For a given task, EventTaskStarted happens-before EventTaskFinished.
//   - No global order is guaranteed between tasks.
//   - A blocking Observer slows the run; observers intended for
//     production use should be non-blocking.
//
// The stream package provides a first-party adapter that forwards events
// into channels with explicit buffering/overflow policies.
package gather
