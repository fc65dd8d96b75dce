package task

import "rtask/sched"

// Handle is a reference to a live scheduler-owned task. It is cheap to
// copy and comparable: two handles are equal when they reference the same
// underlying task. The handle does not own the task's memory; the
// scheduler does, until the task is aborted or completes and is joined.
type Handle struct {
	s  sched.Scheduler
	id sched.ID
}

// ID returns the scheduler identifier of the referenced task.
func (h Handle) ID() sched.ID { return h.id }

// Pause stops execution of the task until Unpause.
//
// Pause with care: a paused task holding a lock cannot release it until it
// is resumed, and anything waiting on that lock stays stuck with it.
func (h Handle) Pause() {
	h.s.Suspend(h.id)
}

// Unpause resumes execution of a paused task.
func (h Handle) Unpause() {
	h.s.Resume(h.id)
}

// SetPriority updates how much scheduler time the task is given. No
// feedback is provided; the underlying contract surfaces no failure for
// priority changes.
func (h Handle) SetPriority(p Priority) {
	h.s.SetPriority(h.id, p.Weight())
}

// SetWeight updates the task's raw scheduler weight. Prefer SetPriority;
// this is the escape hatch for weights outside the bounded enum.
func (h Handle) SetWeight(weight uint32) {
	h.s.SetPriority(h.id, weight)
}

// State fetches the task's current run state from the scheduler. It is
// never cached; every call queries fresh. StateInvalid means the handle no
// longer names a live task (for example after Join or Abort).
func (h Handle) State() State {
	return stateFromCode(h.s.State(h.id))
}

// Notify sends one notification to the task's mailbox. Fire-and-forget:
// there is no acknowledgment and no failure. Repeated notifications before
// the task takes them accumulate; see Runtime.GetNotification.
func (h Handle) Notify() {
	h.s.Notify(h.id)
}

// Join blocks the calling task until the target's unit of work has
// returned, then reclaims the target's scheduler-side resources.
//
// Join consumes the handle: it is not a repeatable query, and the handle
// (and any copy of it) must not be used afterwards.
func (h Handle) Join() {
	h.s.Join(h.id)
}

// Abort forcibly terminates the task immediately, regardless of its
// progress, and consumes the handle.
//
// Resources captured by the task's unit of work are not guaranteed to be
// released: no cleanup code inside the unit of work is guaranteed to run.
// This is a deliberate, documented leak hazard, not a defect. Prefer
// cooperative shutdown (the unit of work observing its context) when the
// captured state matters.
func (h Handle) Abort() {
	h.s.Delete(h.id)
}
