// Package rtask spawns and controls tasks on a preemptive, priority-weighted
// scheduler through a safe, handle-based boundary.
//
// The package-level functions operate on a process-wide default runtime
// backed by a goroutine scheduler (package gosched). That is the right
// entry point for most programs:
//
//	h := rtask.Spawn(func(ctx context.Context) error {
//		for {
//			rtask.Sleep(ctx, time.Second)
//			// ...
//		}
//	})
//
//	h.Notify()
//	h.Abort()
//
// Non-default configuration goes through the builder:
//
//	h, err := rtask.Builder().
//		Name("bg").
//		Priority(task.PriorityLow).
//		StackDepth(task.StackLow).
//		Spawn(work)
//
// When you need finer-grained control, the building blocks live in
// subpackages:
//
//   - rtask/task: the boundary layer (spawn, builder, handles, notifications)
//   - rtask/sched: the scheduler call contract
//   - rtask/gosched: the goroutine-backed scheduler adapter
//   - rtask/schedtest: an instrumented fake scheduler for tests
package rtask
