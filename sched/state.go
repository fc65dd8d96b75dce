package sched

import "fmt"

// StateCode is the raw run-state value reported by a Scheduler. Consumers
// must treat values outside the defined range as CodeInvalid.
type StateCode uint32

const (
	// CodeRunning: the task is currently executing.
	CodeRunning StateCode = iota
	// CodeReady: the task is runnable but not currently executing.
	CodeReady
	// CodeBlocked: the task is waiting (delay, notification, ...).
	CodeBlocked
	// CodeSuspended: the task was suspended and will not run until resumed.
	CodeSuspended
	// CodeDeleted: the task finished or was deleted; terminal.
	CodeDeleted
	// CodeInvalid: the identifier does not name a live task.
	CodeInvalid
)

func (c StateCode) String() string {
	switch c {
	case CodeRunning:
		return "running"
	case CodeReady:
		return "ready"
	case CodeBlocked:
		return "blocked"
	case CodeSuspended:
		return "suspended"
	case CodeDeleted:
		return "deleted"
	case CodeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("StateCode(%d)", uint32(c))
	}
}
