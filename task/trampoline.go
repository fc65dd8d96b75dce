package task

import (
	"context"
	"errors"
	"runtime/debug"
	"sync/atomic"
)

// closureRecord is the one-shot container that carries a unit of work
// across the scheduler boundary. It is heap-allocated and referenced only
// through the opaque argument handed to the scheduler, so its lifetime is
// independent of the spawning call's frame. Ownership transfers exactly
// once: from the spawn operation to the scheduler at creation, and from
// the scheduler to the entry-point invocation at execution.
type closureRecord struct {
	fn   Func
	name string
	cfg  *runtimeConfig

	taken atomic.Bool
}

// entrypoint is the fixed-signature entry point given to the scheduler for
// every spawned task. Its sole behavior is to reconstruct the closure
// record from the opaque argument, take ownership of the unit of work, and
// invoke it exactly once.
func entrypoint(ctx context.Context, arg any) {
	rec, ok := arg.(*closureRecord)
	if !ok {
		panic("task: entry point invoked with a foreign argument")
	}
	rec.call(ctx)
}

func (r *closureRecord) call(ctx context.Context) {
	// One-shot ownership guard. A second invocation means the scheduler
	// broke the creation contract; fail loudly instead of re-running or
	// silently dropping.
	if !r.taken.CompareAndSwap(false, true) {
		panic("task: entry point invoked twice for the same task")
	}
	fn := r.fn
	r.fn = nil

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		info := PanicInfo{Task: r.name, Value: p, Stack: debug.Stack()}
		if r.cfg.onPanic != nil {
			callPanicHandlerNoPanic(r.cfg.onPanic, info)
			return
		}
		reportPanicToStderr(info)
	}()

	err := fn(ctx)
	if err == nil {
		return
	}
	if !r.cfg.reportContextCancel && isContextCancel(err) {
		return
	}
	info := ErrorInfo{Task: r.name, Err: err}
	if r.cfg.onError != nil {
		callErrorHandlerNoPanic(r.cfg.onError, info)
		return
	}
	reportErrorToStderr(info)
}

// discard reclaims a record whose creation call failed. The scheduler
// never took ownership, so the unit of work is dropped here, uninvoked.
func (r *closureRecord) discard() {
	r.taken.Store(true)
	r.fn = nil
}

func isContextCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
