package schedtest

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"rtask/sched"
)

// CreateCall records one Scheduler.Create invocation.
type CreateCall struct {
	ID         sched.ID
	Entry      sched.Entry
	Arg        any
	Weight     uint32
	StackBytes uint32
	Name       string
}

type fakeTask struct {
	id         sched.ID
	entry      sched.Entry
	arg        any
	name       string
	weight     uint32
	stackBytes uint32

	state    sched.StateCode
	ran      bool
	done     chan struct{}
	doneOnce sync.Once

	notified uint32
	notifyCh chan struct{}
}

// Fake is an instrumented sched.Scheduler. Entries never run on their own;
// call Run to invoke one.
type Fake struct {
	clock *Clock

	mu        sync.Mutex
	createErr error
	calls     []CreateCall
	tasks     map[sched.ID]*fakeTask
}

var _ sched.Scheduler = (*Fake)(nil)

// New returns a Fake with a fresh manual Clock.
func New() *Fake {
	return &Fake{
		clock: NewClock(),
		tasks: make(map[sched.ID]*fakeTask),
	}
}

// Clock returns the manual clock backing Delay and NotifyTake timeouts.
func (f *Fake) Clock() *Clock { return f.clock }

// SetCreateErr makes subsequent Create calls fail with err without taking
// ownership of the opaque argument. Pass nil to restore success.
func (f *Fake) SetCreateErr(err error) {
	f.mu.Lock()
	f.createErr = err
	f.mu.Unlock()
}

// CreateCalls returns a copy of all recorded Create invocations, including
// failed ones.
func (f *Fake) CreateCalls() []CreateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CreateCall(nil), f.calls...)
}

// Create records the call and registers the task in the Ready state. The
// entry point is not invoked; use Run.
func (f *Fake) Create(entry sched.Entry, arg any, weight, stackBytes uint32, name string) (sched.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := CreateCall{Entry: entry, Arg: arg, Weight: weight, StackBytes: stackBytes, Name: name}
	if f.createErr != nil {
		f.calls = append(f.calls, call)
		return sched.ID{}, f.createErr
	}

	id := sched.NewID()
	call.ID = id
	f.calls = append(f.calls, call)
	f.tasks[id] = &fakeTask{
		id:         id,
		entry:      entry,
		arg:        arg,
		name:       name,
		weight:     weight,
		stackBytes: stackBytes,
		state:      sched.CodeReady,
		done:       make(chan struct{}),
		notifyCh:   make(chan struct{}, 1),
	}
	return id, nil
}

// Run invokes the task's entry point exactly once, on the calling
// goroutine, with a context carrying the task's identity. It panics if the
// task is unknown or its entry already ran: a second Run would violate the
// one-shot ownership the boundary layer is supposed to guarantee.
func (f *Fake) Run(id sched.ID) {
	f.mu.Lock()
	t := f.tasks[id]
	if t == nil {
		f.mu.Unlock()
		panic(fmt.Sprintf("schedtest: Run(%s): unknown task", id))
	}
	if t.ran {
		f.mu.Unlock()
		panic(fmt.Sprintf("schedtest: Run(%s): entry point already invoked", id))
	}
	t.ran = true
	t.state = sched.CodeRunning
	f.mu.Unlock()

	t.entry(sched.NewContext(context.Background(), id), t.arg)

	f.mu.Lock()
	t.state = sched.CodeDeleted
	f.mu.Unlock()
	t.doneOnce.Do(func() { close(t.done) })
}

func (f *Fake) Suspend(id sched.ID) { f.setState(id, sched.CodeSuspended) }

func (f *Fake) Resume(id sched.ID) { f.setState(id, sched.CodeReady) }

func (f *Fake) SetPriority(id sched.ID, weight uint32) {
	f.mu.Lock()
	if t := f.tasks[id]; t != nil {
		t.weight = weight
	}
	f.mu.Unlock()
}

// Weight reports the task's current weight, 0 for unknown identifiers.
func (f *Fake) Weight(id sched.ID) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t := f.tasks[id]; t != nil {
		return t.weight
	}
	return 0
}

func (f *Fake) State(id sched.ID) sched.StateCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tasks[id]
	if t == nil {
		return sched.CodeInvalid
	}
	return t.state
}

func (f *Fake) Delete(id sched.ID) {
	f.mu.Lock()
	t := f.tasks[id]
	delete(f.tasks, id)
	f.mu.Unlock()
	if t != nil {
		t.doneOnce.Do(func() { close(t.done) })
	}
}

func (f *Fake) Join(id sched.ID) {
	f.mu.Lock()
	t := f.tasks[id]
	f.mu.Unlock()
	if t == nil {
		return
	}
	<-t.done
	f.mu.Lock()
	delete(f.tasks, id)
	f.mu.Unlock()
}

// Delay blocks until the clock is advanced past the wake time.
func (f *Fake) Delay(id sched.ID, d time.Duration) {
	f.setState(id, sched.CodeBlocked)
	<-f.clock.After(d)
	f.setState(id, sched.CodeRunning)
}

func (f *Fake) Notify(id sched.ID) {
	f.mu.Lock()
	t := f.tasks[id]
	if t != nil && t.notified < math.MaxUint32 {
		t.notified++
	}
	f.mu.Unlock()
	if t != nil {
		select {
		case t.notifyCh <- struct{}{}:
		default:
		}
	}
}

func (f *Fake) NotifyTake(id sched.ID, clear bool, timeout time.Duration) uint32 {
	f.mu.Lock()
	t := f.tasks[id]
	f.mu.Unlock()
	if t == nil {
		return 0
	}

	var timeoutCh <-chan time.Time
	if timeout >= 0 {
		timeoutCh = f.clock.After(timeout)
	}

	for {
		f.mu.Lock()
		if t.notified > 0 {
			v := t.notified
			if clear {
				t.notified = 0
			} else {
				t.notified--
			}
			t.state = sched.CodeRunning
			f.mu.Unlock()
			return v
		}
		t.state = sched.CodeBlocked
		f.mu.Unlock()

		select {
		case <-t.notifyCh:
		case <-timeoutCh:
			f.setState(id, sched.CodeRunning)
			return 0
		case <-t.done:
			return 0
		}
	}
}

func (f *Fake) setState(id sched.ID, c sched.StateCode) {
	f.mu.Lock()
	if t := f.tasks[id]; t != nil && t.state != sched.CodeDeleted {
		t.state = c
	}
	f.mu.Unlock()
}
