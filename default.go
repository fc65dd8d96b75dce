package rtask

import (
	"context"
	"sync"
	"time"

	"rtask/gosched"
	"rtask/task"
)

var (
	defaultMu sync.Mutex
	defaultRT *task.Runtime
)

// Default returns the process-wide runtime, lazily assembled over a
// goroutine-backed scheduler on first use.
func Default() *task.Runtime {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRT == nil {
		defaultRT = task.New(gosched.New())
	}
	return defaultRT
}

// SetDefault replaces the process-wide runtime. Call it during program
// initialization, before any task is spawned through the package-level
// functions; handles obtained from the previous runtime keep pointing at
// the previous scheduler.
func SetDefault(rt *task.Runtime) {
	if rt == nil {
		panic("rtask: SetDefault called with nil runtime")
	}
	defaultMu.Lock()
	defaultRT = rt
	defaultMu.Unlock()
}

// Spawn creates a task with all defaults on the default runtime. Creation
// failure is treated as fatal (panic); use Builder().Spawn where failure
// is recoverable.
func Spawn(fn task.Func) task.Handle {
	return Default().Spawn(fn)
}

// Builder returns a task builder bound to the default runtime.
func Builder() task.Builder {
	return Default().Builder()
}

// Sleep suspends the calling task for at least d.
func Sleep(ctx context.Context, d time.Duration) {
	Default().Sleep(ctx, d)
}

// Current returns the handle of the task the context belongs to.
func Current(ctx context.Context) (task.Handle, bool) {
	return Default().Current(ctx)
}

// GetNotification blocks until a notification is pending for the calling
// task, then returns the accumulated value and clears the slot.
func GetNotification(ctx context.Context) uint32 {
	return Default().GetNotification(ctx)
}
