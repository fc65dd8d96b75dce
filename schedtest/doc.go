// Package schedtest provides an instrumented fake sched.Scheduler for
// tests of the task boundary layer.
//
// The fake records every Create call, can be made to fail creation with
// the out-of-memory sentinel, and never runs an entry point on its own:
// the test decides when (and whether) a recorded entry runs, via Run. A
// controllable Clock backs Delay and NotifyTake timeouts, so tests can
// advance time deterministically.
package schedtest
