// Package task is the boundary layer between application code and the
// scheduler that owns task execution.
//
// A Runtime binds the boundary to one sched.Scheduler. Units of work are
// handed over whole at spawn time: the closure and everything it captured
// move to the new task, and nothing is implicitly shared back with the
// spawner. Intentional sharing must go through an explicitly passed,
// externally synchronized primitive.
//
// # Spawning
//
//	rt := task.New(gosched.New())
//
//	h, err := rt.Builder().
//		Name("telemetry").
//		Priority(task.PriorityLow).
//		StackDepth(task.StackLow).
//		Spawn(func(ctx context.Context) error {
//			for {
//				rt.Sleep(ctx, time.Second)
//				// ...
//			}
//		})
//
// Unset builder fields resolve to PriorityDefault (weight 8), StackDefault
// (8192 bytes) and the name "<unnamed>". Runtime.Spawn is the all-defaults
// convenience; it treats creation failure as fatal and panics.
//
// The only recognized creation failure is the scheduler running out of
// memory for the task control block, surfaced as ErrTCBNotCreated. On
// failure the unit of work is reclaimed without ever being invoked and no
// handle is produced.
//
// # Handles
//
// Handle is a cheap, copyable reference to a scheduler-owned task; it does
// not own the task's memory. Join and Abort end the handle's useful life:
// after either call the handle must be treated as dead (State reports
// StateInvalid, other operations degrade to no-ops).
//
// # Notifications
//
// Each task owns a single scheduler-side notification value. Notify
// increments it (saturating at the 32-bit maximum); GetNotification blocks
// until the value is non-zero, then returns it and clears the slot. At
// most one task may consume a given task's notifications: with two
// consumers, which one observes a notification is unspecified.
//
// # Blind spots
//
// Pause, Unpause and SetPriority give no feedback; the underlying contract
// surfaces no failures for them. This is deliberate and documented rather
// than silently assumed.
package task
