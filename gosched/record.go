package gosched

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"rtask/sched"
)

// record is the control block for one task. It is the scheduler-owned state
// the contract talks about: run state, weight, notification value, gates.
type record struct {
	id         sched.ID
	name       string
	stackBytes uint32

	weight atomic.Uint32
	state  atomic.Uint32 // sched.StateCode

	ctx    context.Context
	cancel context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once

	mu        sync.Mutex
	notified  uint32
	notifyCh  chan struct{} // buffered(1); signaled on Notify
	suspended bool
	resumeCh  chan struct{} // non-nil while suspended; closed by Resume
}

func newRecord(id sched.ID, weight, stackBytes uint32, name string) *record {
	r := &record{
		id:         id,
		name:       name,
		stackBytes: stackBytes,
		done:       make(chan struct{}),
		notifyCh:   make(chan struct{}, 1),
	}
	r.weight.Store(weight)
	r.state.Store(uint32(sched.CodeReady))
	r.ctx, r.cancel = context.WithCancel(sched.NewContext(context.Background(), id))
	return r
}

// setState transitions the projected run state. Deleted is terminal and is
// never overwritten.
func (r *record) setState(c sched.StateCode) {
	for {
		old := r.state.Load()
		if sched.StateCode(old) == sched.CodeDeleted {
			return
		}
		if r.state.CompareAndSwap(old, uint32(c)) {
			return
		}
	}
}

func (r *record) stateCode() sched.StateCode {
	return sched.StateCode(r.state.Load())
}

// markDeleted makes deletion observable: terminal state, canceled entry
// context, released joiners. Safe to call more than once.
func (r *record) markDeleted() {
	r.state.Store(uint32(sched.CodeDeleted))
	r.cancel()
	r.doneOnce.Do(func() { close(r.done) })
}

// waitRunnable parks the calling task while it is suspended. It reports
// false when the task was deleted instead of resumed.
func (r *record) waitRunnable() bool {
	for {
		if r.stateCode() == sched.CodeDeleted {
			return false
		}
		r.mu.Lock()
		if !r.suspended {
			r.mu.Unlock()
			return true
		}
		resume := r.resumeCh
		r.mu.Unlock()

		r.setState(sched.CodeSuspended)
		select {
		case <-resume:
		case <-r.ctx.Done():
			return false
		}
	}
}

// addNotification increments the notification value (saturating) and wakes
// a pending take.
func (r *record) addNotification() {
	r.mu.Lock()
	if r.notified < math.MaxUint32 {
		r.notified++
	}
	r.mu.Unlock()

	select {
	case r.notifyCh <- struct{}{}:
	default:
	}
}

// takeNotification removes a pending notification value, if any. With
// clear=true the whole value is taken and the slot zeroed; otherwise the
// value is decremented by one. The returned value is the pre-take value.
func (r *record) takeNotification(clear bool) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notified == 0 {
		return 0, false
	}
	v := r.notified
	if clear {
		r.notified = 0
	} else {
		r.notified--
	}
	return v, true
}
