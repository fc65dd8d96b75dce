package gosched

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rtask/sched"
)

func noopEntry(context.Context, any) {}

func TestCreate_ControlBlockBudget(t *testing.T) {
	t.Parallel()

	s := New(WithMaxTasks(1))

	block := make(chan struct{})
	id, err := s.Create(func(context.Context, any) { <-block }, nil, 8, 8192, "first")
	if err != nil {
		t.Fatalf("first Create err=%v", err)
	}

	_, err = s.Create(noopEntry, nil, 8, 8192, "second")
	if !errors.Is(err, sched.ErrNoTaskMemory) {
		t.Fatalf("second Create err=%v, want ErrNoTaskMemory", err)
	}

	close(block)
	s.Join(id)

	// Budget freed after join.
	id2, err := s.Create(noopEntry, nil, 8, 8192, "third")
	if err != nil {
		t.Fatalf("Create after Join err=%v", err)
	}
	s.Join(id2)
}

func TestCreate_NilEntryRejected(t *testing.T) {
	t.Parallel()

	s := New()
	if _, err := s.Create(nil, nil, 8, 8192, "x"); err == nil {
		t.Fatal("Create(nil entry) err=nil, want error")
	}
}

func TestJoin_WaitsAndReleases(t *testing.T) {
	t.Parallel()

	s := New()

	var ran atomic.Bool
	id, err := s.Create(func(context.Context, any) {
		time.Sleep(5 * time.Millisecond)
		ran.Store(true)
	}, nil, 8, 8192, "worker")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if got := s.Len(); got != 1 {
		t.Fatalf("Len=%d after Create, want 1", got)
	}

	s.Join(id)
	if !ran.Load() {
		t.Fatal("Join returned before the entry point finished")
	}
	if got := s.Len(); got != 0 {
		t.Fatalf("Len=%d after Join, want 0", got)
	}
	if got := s.State(id); got != sched.CodeInvalid {
		t.Fatalf("State after Join=%v, want CodeInvalid", got)
	}
}

func TestNaturalCompletion_DeletedObservableUntilJoin(t *testing.T) {
	t.Parallel()

	s := New()
	id, err := s.Create(noopEntry, nil, 8, 8192, "shortlived")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.State(id) != sched.CodeDeleted {
		if time.Now().After(deadline) {
			t.Fatalf("State=%v, want CodeDeleted after natural completion", s.State(id))
		}
		time.Sleep(time.Millisecond)
	}
	s.Join(id)
	if got := s.State(id); got != sched.CodeInvalid {
		t.Fatalf("State after Join=%v, want CodeInvalid", got)
	}
}

func TestDelete_WhileBlockedInDelay(t *testing.T) {
	t.Parallel()

	s := New()

	started := make(chan struct{})
	var after atomic.Bool
	id, err := s.Create(func(ctx context.Context, _ any) {
		self, _ := sched.FromContext(ctx)
		close(started)
		s.Delay(self, time.Hour)
		after.Store(true)
	}, nil, 8, 8192, "sleeper")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	<-started
	waitCode(t, s, id, sched.CodeBlocked)

	s.Delete(id)
	time.Sleep(20 * time.Millisecond)
	if after.Load() {
		t.Fatal("code after Delay ran despite Delete")
	}
	if got := s.State(id); got != sched.CodeInvalid {
		t.Fatalf("State after Delete=%v, want CodeInvalid", got)
	}
	if got := s.Len(); got != 0 {
		t.Fatalf("Len=%d after Delete, want 0", got)
	}
}

func TestSuspendResume_AroundDispatch(t *testing.T) {
	t.Parallel()

	s := New()

	var runs atomic.Int64
	id, err := s.Create(func(context.Context, any) { runs.Add(1) }, nil, 8, 8192, "gated")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	// Whichever side of dispatch the suspend lands on, resume must let the
	// entry run exactly once.
	s.Suspend(id)
	s.Resume(id)
	s.Join(id)

	if got := runs.Load(); got != 1 {
		t.Fatalf("entry ran %d times, want 1", got)
	}
}

func TestSuspend_ParksDelayedTask(t *testing.T) {
	t.Parallel()

	s := New()

	var woke atomic.Bool
	id, err := s.Create(func(ctx context.Context, _ any) {
		self, _ := sched.FromContext(ctx)
		for {
			s.Delay(self, time.Millisecond)
			woke.Store(true)
		}
	}, nil, 8, 8192, "looper")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	waitTrue(t, func() bool { return woke.Load() })

	s.Suspend(id)
	waitCode(t, s, id, sched.CodeSuspended)
	// Let any in-flight wake settle, then verify the loop stays parked.
	time.Sleep(20 * time.Millisecond)
	woke.Store(false)
	time.Sleep(20 * time.Millisecond)
	if woke.Load() {
		t.Fatal("suspended task kept running its loop")
	}

	s.Resume(id)
	waitTrue(t, func() bool { return woke.Load() })
	s.Delete(id)
}

func TestNotifyTake_ClearAndDecrementModes(t *testing.T) {
	t.Parallel()

	s := New()

	block := make(chan struct{})
	id, err := s.Create(func(context.Context, any) { <-block }, nil, 8, 8192, "mailbox")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	s.Notify(id)
	s.Notify(id)

	// Decrement mode: value returned whole, slot decremented by one.
	if got := s.NotifyTake(id, false, 0); got != 2 {
		t.Fatalf("NotifyTake(decrement)=%d, want 2", got)
	}
	if got := s.NotifyTake(id, false, 0); got != 1 {
		t.Fatalf("NotifyTake(decrement)=%d, want 1", got)
	}
	// Empty slot with zero timeout: returns 0.
	if got := s.NotifyTake(id, false, 0); got != 0 {
		t.Fatalf("NotifyTake on empty slot=%d, want 0", got)
	}

	// Clear mode: whole value taken at once.
	s.Notify(id)
	s.Notify(id)
	s.Notify(id)
	if got := s.NotifyTake(id, true, 0); got != 3 {
		t.Fatalf("NotifyTake(clear)=%d, want 3", got)
	}
	if got := s.NotifyTake(id, true, 0); got != 0 {
		t.Fatalf("NotifyTake(clear) on empty slot=%d, want 0", got)
	}

	close(block)
	s.Join(id)
}

func TestUnknownIdentifiersAreHarmless(t *testing.T) {
	t.Parallel()

	s := New()
	id := sched.NewID()

	if got := s.State(id); got != sched.CodeInvalid {
		t.Fatalf("State(unknown)=%v, want CodeInvalid", got)
	}
	s.Suspend(id)
	s.Resume(id)
	s.SetPriority(id, 5)
	s.Notify(id)
	s.Delete(id)
	s.Join(id) // returns immediately
	if got := s.NotifyTake(id, true, 0); got != 0 {
		t.Fatalf("NotifyTake(unknown)=%d, want 0", got)
	}
}

func TestSnapshot_SortedByName(t *testing.T) {
	t.Parallel()

	s := New()
	block := make(chan struct{})
	entry := func(context.Context, any) { <-block }

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := s.Create(entry, nil, 8, 8192, name); err != nil {
			t.Fatalf("Create(%q) err=%v", name, err)
		}
	}

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot len=%d, want 3", len(snap))
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, st := range snap {
		if st.Name != want[i] {
			t.Fatalf("Snapshot[%d].Name=%q, want %q", i, st.Name, want[i])
		}
		if st.Weight != 8 || st.StackBytes != 8192 {
			t.Fatalf("Snapshot[%d]={weight:%d stack:%d}, want {8 8192}", i, st.Weight, st.StackBytes)
		}
	}

	close(block)
}

func waitCode(t *testing.T, s *Scheduler, id sched.ID, want sched.StateCode) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State(id) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("State=%v, want %v (timed out)", s.State(id), want)
}

func waitTrue(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached (timed out)")
}
