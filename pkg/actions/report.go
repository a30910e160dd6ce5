package actions

import (
	"errors"
	"time"
)

// Status is the outcome of one action.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusOK:
		return "Done"
	case StatusSkipped:
		return "Skipped"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// Event records the outcome of an action.
type Event struct {
	Action    string    // Action name, e.g. "microcode"
	Status    Status    // Outcome
	Message   string    // Skip reason or error text
	Err       error     // Set when Status is StatusFailed
	Timestamp time.Time // When the action finished
}

// Callback is called after every action.
type Callback func(Event)

// NoOpCallback is a callback that does nothing.
func NoOpCallback(_ Event) {}

// SkipError marks an action that had nothing to do.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// Skip returns an error that makes Plan record the action as skipped.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// IsSkip reports whether err marks a skipped action.
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}

// Report collects action events for later review.
type Report struct {
	events []Event
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{events: make([]Event, 0)}
}

// Callback returns a Callback that records events.
func (r *Report) Callback() Callback {
	return func(e Event) {
		r.events = append(r.events, e)
	}
}

// Events returns all recorded events.
func (r *Report) Events() []Event {
	return r.events
}

// Last returns the most recent event, or nil if none.
func (r *Report) Last() *Event {
	if len(r.events) == 0 {
		return nil
	}
	return &r.events[len(r.events)-1]
}

// Find returns the event of the named action, or nil.
func (r *Report) Find(action string) *Event {
	for i := range r.events {
		if r.events[i].Action == action {
			return &r.events[i]
		}
	}
	return nil
}

// HasFailures returns true if any action failed.
func (r *Report) HasFailures() bool {
	for _, e := range r.events {
		if e.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Failures returns all failed events.
func (r *Report) Failures() []Event {
	var failed []Event
	for _, e := range r.events {
		if e.Status == StatusFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// Count returns the number of events with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, e := range r.events {
		if e.Status == status {
			n++
		}
	}
	return n
}
