package sched

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the identity of the task it is
// handed to. Schedulers call this when building the context passed to a
// task's entry point; the boundary layer reads it back with FromContext to
// implement "current task" operations.
func NewContext(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity of the task the context belongs to.
// It reports false when the context does not originate from a task entry
// point (for example, the main goroutine).
func FromContext(ctx context.Context) (ID, bool) {
	if ctx == nil {
		return ID{}, false
	}
	id, ok := ctx.Value(ctxKey{}).(ID)
	if !ok || id.IsZero() {
		return ID{}, false
	}
	return id, true
}
