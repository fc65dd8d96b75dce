package task

import (
	"fmt"

	"rtask/sched"
)

// State is the run state of a task, always fetched fresh from the
// scheduler and never cached or inferred locally.
type State int

const (
	// StateRunning: the task is currently utilizing the processor.
	StateRunning State = iota
	// StateReady: the task is runnable and waiting to be selected.
	StateReady
	// StateBlocked: the task is waiting, for example sleeping or pending a
	// notification. Blocked tasks return to the ready queue on wake.
	StateBlocked
	// StateSuspended: the task was paused and will not run until unpaused.
	StateSuspended
	// StateDeleted: the task finished or was aborted; terminal.
	StateDeleted
	// StateInvalid: the handle does not name a live task, or the scheduler
	// reported a state outside the enumeration.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateReady:
		return "ready"
	case StateBlocked:
		return "blocked"
	case StateSuspended:
		return "suspended"
	case StateDeleted:
		return "deleted"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// stateFromCode projects a raw scheduler state code onto the enum.
// Anything unrecognized is StateInvalid.
func stateFromCode(c sched.StateCode) State {
	switch c {
	case sched.CodeRunning:
		return StateRunning
	case sched.CodeReady:
		return StateReady
	case sched.CodeBlocked:
		return StateBlocked
	case sched.CodeSuspended:
		return StateSuspended
	case sched.CodeDeleted:
		return StateDeleted
	default:
		return StateInvalid
	}
}
