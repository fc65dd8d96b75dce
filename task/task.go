package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rtask/sched"
)

// Func is the unit of work executed by a spawned task. It runs exactly
// once, on the new task, with a context that carries the task's identity
// and is canceled when the task is aborted.
//
// A returned non-nil error is reported via the runtime's error handler
// (stderr by default); it does not affect the task lifecycle. Long-running
// loops should call Runtime.Sleep to give other tasks a chance to run.
type Func func(ctx context.Context) error

type runtimeConfig struct {
	logger              *slog.Logger
	onError             ErrorHandler
	onPanic             PanicHandler
	reportContextCancel bool
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithLogger enables structured spawn logging at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *runtimeConfig) { c.logger = l }
}

// WithErrorHandler sets the handler for errors returned by units of work.
// If not set, errors are reported to stderr.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *runtimeConfig) { c.onError = h }
}

// WithPanicHandler sets the handler for panics recovered inside units of
// work. If not set, panics are reported to stderr.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *runtimeConfig) { c.onPanic = h }
}

// WithReportContextCancel controls whether context.Canceled and
// context.DeadlineExceeded returned by a unit of work are reported. They
// are filtered by default because they are routine during abort.
func WithReportContextCancel(report bool) Option {
	return func(c *runtimeConfig) { c.reportContextCancel = report }
}

// Runtime binds the task boundary to one scheduler. It is safe for
// concurrent use.
type Runtime struct {
	s   sched.Scheduler
	cfg runtimeConfig
}

// New creates a Runtime over the given scheduler.
func New(s sched.Scheduler, opts ...Option) *Runtime {
	if s == nil {
		panic("task: New called with nil scheduler")
	}
	rt := &Runtime{s: s}
	for _, opt := range opts {
		if opt != nil {
			opt(&rt.cfg)
		}
	}
	return rt
}

// Scheduler returns the scheduler this runtime is bound to.
func (rt *Runtime) Scheduler() sched.Scheduler { return rt.s }

// Builder returns a builder with all fields at their defaults.
func (rt *Runtime) Builder() Builder {
	return Builder{rt: rt}
}

// Spawn creates a task with all defaults and treats creation failure as
// fatal: it panics instead of returning an error. Use Builder.Spawn where
// creation failure is recoverable. Tasks should be long-living; spawning
// many short tasks is slow and usually unnecessary.
func (rt *Runtime) Spawn(fn Func) Handle {
	h, err := rt.Builder().Spawn(fn)
	if err != nil {
		panic(fmt.Sprintf("task: spawn failed: %v", err))
	}
	return h
}

// spawn is the spawn operation: it allocates the closure record, requests
// creation from the scheduler, and converts failure into a typed error
// while guaranteeing the record leaks nowhere and is never invoked early.
func (rt *Runtime) spawn(fn Func, p Priority, d StackDepth, name string) (Handle, error) {
	if fn == nil {
		panic("task: spawn called with nil Func")
	}
	name = normalizeName(name)
	if name == "" {
		name = DefaultName
	}

	rec := &closureRecord{fn: fn, name: name, cfg: &rt.cfg}
	id, err := rt.s.Create(entrypoint, rec, p.Weight(), d.Bytes(), name)
	if err != nil {
		// The scheduler never took ownership; reclaim the record here.
		rec.discard()
		if errors.Is(err, sched.ErrNoTaskMemory) {
			return Handle{}, fmt.Errorf("%w: %q", ErrTCBNotCreated, name)
		}
		// The contract recognizes no other failure; pass it through rather
		// than misfile it under the out-of-memory kind.
		return Handle{}, fmt.Errorf("task: create %q: %w", name, err)
	}

	if rt.cfg.logger != nil {
		rt.cfg.logger.Debug("task spawned",
			slog.String("task", id.String()),
			slog.String("name", name),
			slog.Uint64("weight", uint64(p.Weight())),
			slog.Uint64("stack_bytes", uint64(d.Bytes())),
		)
	}
	return Handle{s: rt.s, id: id}, nil
}

// Sleep suspends the calling task for at least d; the scheduler may delay
// longer under load. From a goroutine that is not a spawned task it
// degrades to a plain sleep.
func (rt *Runtime) Sleep(ctx context.Context, d time.Duration) {
	id, _ := sched.FromContext(ctx)
	rt.s.Delay(id, d)
}

// Current returns the handle of the task the context belongs to. It
// reports false when called outside a spawned task.
func (rt *Runtime) Current(ctx context.Context) (Handle, bool) {
	id, ok := sched.FromContext(ctx)
	if !ok {
		return Handle{}, false
	}
	return Handle{s: rt.s, id: id}, true
}

// GetNotification blocks until the calling task's notification value is
// non-zero, then returns the accumulated value and clears the slot.
// Repeated Notify calls before a take accumulate (saturating at the
// 32-bit maximum), so the returned value is the number of notifications
// coalesced into this wake.
//
// It panics when called outside a spawned task: only a task owns a
// mailbox. At most one task may consume a given task's notifications.
func (rt *Runtime) GetNotification(ctx context.Context) uint32 {
	id, ok := sched.FromContext(ctx)
	if !ok {
		panic("task: GetNotification called outside a spawned task")
	}
	return rt.s.NotifyTake(id, true, sched.Forever)
}
