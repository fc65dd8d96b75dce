package schedtest

import (
	"testing"
	"time"
)

func TestClock_AfterFiresOnlyOnAdvance(t *testing.T) {
	t.Parallel()

	c := NewClock()
	ch := c.After(10 * time.Millisecond)

	c.Advance(9 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("timer fired before its wake time")
	default:
	}

	c.Advance(time.Millisecond)
	select {
	case <-ch:
	default:
		t.Fatal("timer did not fire at its wake time")
	}
	if got := c.Timers(); got != 0 {
		t.Fatalf("Timers=%d after firing, want 0", got)
	}
}

func TestClock_NonPositiveAfterFiresImmediately(t *testing.T) {
	t.Parallel()

	c := NewClock()
	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
	select {
	case <-c.After(-time.Second):
	default:
		t.Fatal("After(negative) did not fire immediately")
	}
}

func TestClock_TimersFireInWakeOrder(t *testing.T) {
	t.Parallel()

	c := NewClock()
	late := c.After(20 * time.Millisecond)
	early := c.After(5 * time.Millisecond)

	c.Advance(5 * time.Millisecond)
	select {
	case <-early:
	default:
		t.Fatal("early timer did not fire at its wake time")
	}
	select {
	case <-late:
		t.Fatal("late timer fired early")
	default:
	}

	c.Advance(15 * time.Millisecond)
	select {
	case <-late:
	default:
		t.Fatal("late timer did not fire at its wake time")
	}
}

func TestClock_NowTracksAdvance(t *testing.T) {
	t.Parallel()

	c := NewClock()
	start := c.Now()
	c.Advance(3 * time.Second)
	if got := c.Now().Sub(start); got != 3*time.Second {
		t.Fatalf("Now moved by %v, want 3s", got)
	}
}

func TestClock_WaitTimersReleasesWhenSleeperParks(t *testing.T) {
	t.Parallel()

	c := NewClock()
	go func() {
		<-c.After(time.Minute)
	}()

	c.WaitTimers(1)
	if got := c.Timers(); got < 1 {
		t.Fatalf("Timers=%d after WaitTimers(1), want >=1", got)
	}
	c.Advance(time.Minute)
}
