package sched

import (
	"context"
	"errors"
	"time"
)

// Entry is the fixed-signature entry point a Scheduler invokes to start a
// task. The scheduler passes back the opaque arg it received at Create time,
// untouched, exactly once. The ctx carries the task's identity (see
// FromContext) and is canceled when the task is deleted.
type Entry func(ctx context.Context, arg any)

// ErrNoTaskMemory is reported by Create when the scheduler cannot allocate
// the control block for a new task. It is the only creation failure the
// contract distinguishes.
var ErrNoTaskMemory = errors.New("sched: no memory for task control block")

// Forever makes NotifyTake wait indefinitely for a notification.
const Forever time.Duration = -1

// Scheduler is the external task manager the boundary layer delegates to.
//
// Create either takes ownership of arg and returns a live task identifier,
// or returns an error and never touches arg again. All other operations
// accept identifiers of tasks that may already be gone; implementations
// must treat unknown identifiers as harmless no-ops (State returns
// CodeInvalid, Join returns immediately, NotifyTake returns 0).
//
// Delay and NotifyTake block the calling goroutine and must be called from
// the goroutine of the task identified by id (or with a zero id for plain
// sleeping, in the case of Delay).
type Scheduler interface {
	// Create registers a new task and starts it with the given entry point,
	// opaque argument, priority weight, stack size hint and name. The name
	// is copied; the caller keeps no obligations after Create returns.
	Create(entry Entry, arg any, weight, stackBytes uint32, name string) (ID, error)

	// Suspend requests that the task stop being scheduled until Resume.
	Suspend(id ID)

	// Resume lifts a previous Suspend.
	Resume(id ID)

	// SetPriority updates the task's scheduling weight.
	SetPriority(id ID, weight uint32)

	// State reports the task's current run state.
	State(id ID) StateCode

	// Delete forcibly terminates the task and releases its control block.
	Delete(id ID)

	// Join blocks until the task's entry point has returned, then releases
	// the task's control block.
	Join(id ID)

	// Delay blocks the calling task for at least d.
	Delay(id ID, d time.Duration)

	// Notify increments the task's notification value and wakes a pending
	// NotifyTake, if any.
	Notify(id ID)

	// NotifyTake blocks until the task's notification value is non-zero or
	// the timeout elapses (Forever waits indefinitely). It returns the value
	// and either clears it (clear=true) or decrements it by one.
	NotifyTake(id ID, clear bool, timeout time.Duration) uint32
}
