package schedtest

import (
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// timerKey orders pending timers by wake time, with a sequence number as a
// tiebreaker so timers are distinct keys.
type timerKey struct {
	at  time.Time
	seq uint64
}

func compareTimerKeys(a, b interface{}) int {
	ka := a.(timerKey)
	kb := b.(timerKey)
	switch {
	case ka.at.Before(kb.at):
		return -1
	case ka.at.After(kb.at):
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// Clock is a manually driven time source. Timers only fire when the test
// calls Advance.
type Clock struct {
	mu     sync.Mutex
	cond   *sync.Cond
	now    time.Time
	seq    uint64
	timers *redblacktree.Tree // timerKey -> chan time.Time
}

// NewClock returns a Clock starting at an arbitrary fixed instant.
func NewClock() *Clock {
	c := &Clock{
		now:    time.Unix(0, 0),
		timers: redblacktree.NewWith(compareTimerKeys),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Now returns the clock's current instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that fires once Advance has moved the clock at
// least d past the current instant. Non-positive d fires immediately.
func (c *Clock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	if d <= 0 {
		ch <- c.now
		c.mu.Unlock()
		return ch
	}
	c.seq++
	c.timers.Put(timerKey{at: c.now.Add(d), seq: c.seq}, ch)
	c.cond.Broadcast()
	c.mu.Unlock()
	return ch
}

// Advance moves the clock forward by d and fires every timer that became
// due, in wake order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	for {
		node := c.timers.Left()
		if node == nil {
			break
		}
		key := node.Key.(timerKey)
		if key.at.After(now) {
			break
		}
		node.Value.(chan time.Time) <- now
		c.timers.Remove(key)
	}
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Timers reports the number of pending timers.
func (c *Clock) Timers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers.Size()
}

// WaitTimers blocks until at least n timers are pending. Tests use it to
// know a sleeper has parked before advancing the clock.
func (c *Clock) WaitTimers(n int) {
	c.mu.Lock()
	for c.timers.Size() < n {
		c.cond.Wait()
	}
	c.mu.Unlock()
}
