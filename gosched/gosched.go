package gosched

import (
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"rtask/sched"
)

// Scheduler maps the sched.Scheduler contract onto goroutines.
//
// It is safe for concurrent use. The zero value is not usable; construct
// with New.
type Scheduler struct {
	cfg config

	mu    sync.Mutex
	tasks map[sched.ID]*record
}

var _ sched.Scheduler = (*Scheduler)(nil)

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	c := config{clock: systemClock{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return &Scheduler{
		cfg:   c,
		tasks: make(map[sched.ID]*record),
	}
}

// Create registers a control block and starts a goroutine for the task.
// The entry point runs at most once; a Delete that lands before dispatch
// wins and the entry point never runs.
func (s *Scheduler) Create(entry sched.Entry, arg any, weight, stackBytes uint32, name string) (sched.ID, error) {
	if entry == nil {
		return sched.ID{}, errors.New("gosched: nil entry point")
	}

	id := sched.NewID()
	r := newRecord(id, weight, stackBytes, name)

	s.mu.Lock()
	if s.cfg.maxTasks > 0 && len(s.tasks) >= s.cfg.maxTasks {
		s.mu.Unlock()
		return sched.ID{}, sched.ErrNoTaskMemory
	}
	s.tasks[id] = r
	s.mu.Unlock()

	s.logDebug("task created", r)
	go s.dispatch(r, entry, arg)
	return id, nil
}

func (s *Scheduler) dispatch(r *record, entry sched.Entry, arg any) {
	// markDeleted runs even when a blocking verb exits the task via
	// runtime.Goexit, so joiners are always released.
	defer func() {
		r.markDeleted()
		s.logDebug("task finished", r)
	}()

	// Gate, then swap to Running. Losing the swap to a Delete means the
	// entry point must never run; losing it to a Suspend re-parks.
	for {
		if !r.waitRunnable() {
			return
		}
		old := r.state.Load()
		if sched.StateCode(old) == sched.CodeDeleted {
			return
		}
		if r.state.CompareAndSwap(old, uint32(sched.CodeRunning)) {
			break
		}
	}
	entry(r.ctx, arg)
}

// Suspend requests that the task stop running. The gate is honored at
// scheduler interaction points; see the package comment.
func (s *Scheduler) Suspend(id sched.ID) {
	r := s.lookup(id)
	if r == nil {
		return
	}
	r.mu.Lock()
	if !r.suspended && r.stateCode() != sched.CodeDeleted {
		r.suspended = true
		r.resumeCh = make(chan struct{})
	}
	r.mu.Unlock()
	r.setState(sched.CodeSuspended)
}

// Resume lifts a previous Suspend.
func (s *Scheduler) Resume(id sched.ID) {
	r := s.lookup(id)
	if r == nil {
		return
	}
	r.mu.Lock()
	if r.suspended {
		r.suspended = false
		close(r.resumeCh)
		r.resumeCh = nil
	}
	r.mu.Unlock()
	r.setState(sched.CodeReady)
}

// SetPriority updates the task's advisory weight.
func (s *Scheduler) SetPriority(id sched.ID, weight uint32) {
	if r := s.lookup(id); r != nil {
		r.weight.Store(weight)
	}
}

// State reports the task's run state, CodeInvalid for unknown identifiers.
func (s *Scheduler) State(id sched.ID) sched.StateCode {
	r := s.lookup(id)
	if r == nil {
		return sched.CodeInvalid
	}
	return r.stateCode()
}

// Delete forcibly terminates the task and releases its control block.
// The entry context is canceled and blocked verbs exit the task, but a
// task busy outside any scheduler interaction keeps its goroutine until
// it returns on its own.
func (s *Scheduler) Delete(id sched.ID) {
	s.mu.Lock()
	r := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()
	if r == nil {
		return
	}
	r.markDeleted()
	s.logDebug("task deleted", r)
}

// Join blocks until the task's entry point has returned, then releases the
// control block. Join on an unknown identifier returns immediately.
func (s *Scheduler) Join(id sched.ID) {
	r := s.lookup(id)
	if r == nil {
		return
	}
	<-r.done
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
	s.logDebug("task joined", r)
}

// Delay blocks the calling task for at least d. With a zero or unknown id
// it degrades to a plain sleep of the calling goroutine.
func (s *Scheduler) Delay(id sched.ID, d time.Duration) {
	r := s.lookup(id)
	if r == nil {
		if d > 0 {
			<-s.cfg.clock.After(d)
		}
		return
	}

	r.setState(sched.CodeBlocked)
	select {
	case <-s.cfg.clock.After(d):
	case <-r.ctx.Done():
		runtime.Goexit()
	}
	if !r.waitRunnable() {
		runtime.Goexit()
	}
	r.setState(sched.CodeRunning)
}

// Notify increments the task's notification value and wakes a pending
// NotifyTake.
func (s *Scheduler) Notify(id sched.ID) {
	if r := s.lookup(id); r != nil {
		r.addNotification()
	}
}

// NotifyTake blocks until the task's notification value is non-zero or the
// timeout elapses (sched.Forever waits indefinitely). Must be called from
// the task's own goroutine.
func (s *Scheduler) NotifyTake(id sched.ID, clear bool, timeout time.Duration) uint32 {
	r := s.lookup(id)
	if r == nil {
		return 0
	}

	var timeoutCh <-chan time.Time
	if timeout >= 0 {
		timeoutCh = s.cfg.clock.After(timeout)
	}

	for {
		if v, ok := r.takeNotification(clear); ok {
			r.setState(sched.CodeRunning)
			return v
		}

		r.setState(sched.CodeBlocked)
		select {
		case <-r.notifyCh:
		case <-timeoutCh:
			r.setState(sched.CodeRunning)
			return 0
		case <-r.ctx.Done():
			runtime.Goexit()
		}
		if !r.waitRunnable() {
			runtime.Goexit()
		}
	}
}

// Stat is a point-in-time view of one live task.
type Stat struct {
	ID         sched.ID
	Name       string
	Weight     uint32
	StackBytes uint32
	State      sched.StateCode
}

// Snapshot returns a point-in-time view of all live tasks, ordered by name
// then identifier for stable output.
func (s *Scheduler) Snapshot() []Stat {
	s.mu.Lock()
	out := make([]Stat, 0, len(s.tasks))
	for _, r := range s.tasks {
		out = append(out, Stat{
			ID:         r.id,
			Name:       r.name,
			Weight:     r.weight.Load(),
			StackBytes: r.stackBytes,
			State:      r.stateCode(),
		})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len reports the number of live control blocks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Scheduler) lookup(id sched.ID) *record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

func (s *Scheduler) logDebug(msg string, r *record) {
	if s.cfg.logger == nil {
		return
	}
	s.cfg.logger.Debug(msg,
		slog.String("task", r.id.String()),
		slog.String("name", r.name),
		slog.Any("state", r.stateCode()),
	)
}
