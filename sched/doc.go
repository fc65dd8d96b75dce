// Package sched defines the call contract between the task boundary layer
// and the scheduler that actually owns task execution.
//
// The boundary layer (package task) never schedules anything itself; it only
// talks to a Scheduler. Package gosched provides the goroutine-backed
// implementation, and package schedtest provides an instrumented fake for
// tests. Application code normally does not use this package directly.
package sched
