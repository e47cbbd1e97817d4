// Package schedule provides cancellable, owned timers for the overlay state machines.
//
// Every callback runs on the caller's event loop: the Manual scheduler runs
// them inside Advance, the Loop scheduler hands them to a post function that
// forwards them to the UI loop. Callbacks are therefore never concurrent with
// the state they mutate.
package schedule

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It reports whether the
	// callback was still pending.
	Cancel() bool
}

// Scheduler arms callbacks to run after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Cancel cancels t if it is non-nil. It is a convenience for optional task fields.
func Cancel(t Task) {
	if t != nil {
		t.Cancel()
	}
}

type noopTask struct{}

func (noopTask) Cancel() bool { return false }
