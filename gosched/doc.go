// Package gosched implements the sched.Scheduler contract on top of plain
// goroutines.
//
// gosched does not schedule anything itself; the Go runtime does. What it
// adds is the bookkeeping the contract requires: task identities, a
// queryable run-state per task, join/delete semantics, suspend/resume
// gates, per-task notification values, and a configurable control-block
// budget so creation can actually fail.
//
// # Fidelity notes
//
// Priority weights and stack sizes are recorded and observable via Stat,
// but they are advisory: goroutines cannot be weighted or given fixed
// stacks. Suspension and deletion are honored at scheduler interaction
// points (entry dispatch, Delay, NotifyTake) and through cancellation of
// the entry context; a task that never interacts with the scheduler and
// ignores its context keeps its goroutine running until it returns. Delete
// still makes the task's deletion observable immediately, which matches
// the contract: deletion guarantees nothing about cleanup inside the task.
package gosched
