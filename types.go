package gather

import (
	"context"
	"time"
)

// TaskFunc is the work for a single task.
//
// i is the task's index within its Group, in [0, N). The same function
// is invoked exactly once per index.
type TaskFunc func(ctx context.Context, i int) error

// Result captures the outcome of a single task execution.
type Result struct {
	// Index is the task's index within the group.
	Index int `json:"index"`

	// Err is the error returned from the task function, if any.
	Err error `json:"err,omitempty"`

	// StartedAt is when the task began running.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the task finished running.
	CompletedAt time.Time `json:"completed_at"`
}

// Summary is the top-level result of a Group run.
type Summary struct {
	// Results holds one Result per task, positioned by task index.
	Results []Result `json:"results"`

	// Failed is true if at least one task failed.
	Failed bool `json:"failed,omitempty"`
}

// EventType describes the type of lifecycle event for a task.
type EventType int

const (
	EventTaskStarted EventType = iota
	EventTaskFinished
)

// Event is a fire-and-forget notification about task lifecycle.
type Event struct {
	Type  EventType `json:"type"`
	Time  time.Time `json:"time"`
	RunID string    `json:"run_id,omitempty"`
	Index int       `json:"index"`

	// Result is nil unless Type is EventTaskFinished. It is a snapshot
	// finalized by the task that emitted it and must not be mutated.
	Result *Result `json:"result,omitempty"`
}

// Observer can be implemented by callers who want a pluggable way to
// observe events (e.g. TUIs, JSON loggers, tests).
//
// HandleEvent may be called concurrently from multiple tasks.
type Observer interface {
	HandleEvent(e Event)
}
